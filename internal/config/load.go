package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML job file, applies defaults and validates it.
//
// Relative image and output paths are resolved against the directory that
// contains the job file, so a job directory can be moved as a unit.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}

	job.resolvePaths(filepath.Dir(path))
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Write persists a job as YAML.
func Write(job *Job, path string) error {
	data, err := yaml.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (j *Job) resolvePaths(base string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	resolve(&j.Image)
	resolve(&j.Output.Final)
	resolve(&j.Output.Animation)
	resolve(&j.Output.FramesDir)
}
