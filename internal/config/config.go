// Package config describes fill jobs: which image to fill, from which seeds,
// with which color pickers, and where to write the results.
//
// A Job carries both yaml and json tags so the same description can come
// from a YAML job file (see Load) or from MCP tool arguments.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

// ErrInvalidJob is wrapped by every validation failure.
var ErrInvalidJob = errors.New("invalid fill job")

// Picker types.
const (
	PickerSolid      = "solid"
	PickerNegative   = "negative"
	PickerMosaic     = "mosaic"
	PickerSoftBorder = "soft_border"
	PickerBlur       = "blur"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultMode       = "bfs"
	DefaultFrameFreq  = 100
	DefaultDelay      = 4   // hundredths of a second per frame
	DefaultFinalDelay = 200 // hold the finished fill for two seconds
)

// Job is a complete fill request.
type Job struct {
	// Image is the path of the image to fill.
	Image string `yaml:"image" json:"path"`

	// Mode is "bfs" (breadth-first) or "dfs" (depth-first).
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`

	// Tolerance is the maximum color distance from a seed's reference color
	// for a pixel to join its region.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// FrameFreq records an animation frame after every FrameFreq filled pixels.
	FrameFreq int `yaml:"frame_freq,omitempty" json:"frame_freq,omitempty"`

	// Seeds are processed in order; earlier seeds claim shared pixels.
	Seeds []SeedSpec `yaml:"seeds" json:"seeds"`

	Output Output `yaml:"output,omitempty" json:"output,omitempty"`
}

// SeedSpec is one seed and the picker that colors its region.
type SeedSpec struct {
	X      int        `yaml:"x" json:"x"`
	Y      int        `yaml:"y" json:"y"`
	Picker PickerSpec `yaml:"picker" json:"picker"`
}

// PickerSpec selects and parameterizes a color picker.
//
// Parameters by type:
//   - solid: Color (hex, e.g. "#FF8800")
//   - negative: none
//   - mosaic: Width (tile side in pixels, >= 1)
//   - soft_border: Radius (whole pixels, >= 0), Tolerance (defaults to the job tolerance)
//   - blur: Radius (Gaussian radius, > 0)
type PickerSpec struct {
	Type      string   `yaml:"type" json:"type"`
	Color     string   `yaml:"color,omitempty" json:"color,omitempty"`
	Width     int      `yaml:"width,omitempty" json:"width,omitempty"`
	Radius    float64  `yaml:"radius,omitempty" json:"radius,omitempty"`
	Tolerance *float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Output says where results go. Every field is optional; a job with no
// outputs still runs and reports its statistics.
type Output struct {
	// Final is the path of the finished image; the format follows the extension.
	Final string `yaml:"final,omitempty" json:"final,omitempty"`

	// Animation is the path of an animated GIF of all frames.
	Animation string `yaml:"animation,omitempty" json:"animation,omitempty"`

	// FramesDir receives every frame as frame_NNNNN.png.
	FramesDir string `yaml:"frames_dir,omitempty" json:"frames_dir,omitempty"`

	// Workers bounds concurrent frame encoding; 0 means one per CPU.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// Delay is the per-frame animation delay in hundredths of a second.
	Delay int `yaml:"delay,omitempty" json:"delay,omitempty"`

	// FinalDelay is how long the last animation frame is held.
	FinalDelay int `yaml:"final_delay,omitempty" json:"final_delay,omitempty"`

	// InlineFinal returns the finished image as base64 PNG in MCP results.
	InlineFinal bool `yaml:"inline_final,omitempty" json:"inline_final,omitempty"`
}

// ApplyDefaults fills in unset optional fields.
func (j *Job) ApplyDefaults() {
	if j.Mode == "" {
		j.Mode = DefaultMode
	}
	if j.FrameFreq == 0 {
		j.FrameFreq = DefaultFrameFreq
	}
	if j.Output.Delay == 0 {
		j.Output.Delay = DefaultDelay
	}
	if j.Output.FinalDelay == 0 {
		j.Output.FinalDelay = DefaultFinalDelay
	}
	for i := range j.Seeds {
		j.Seeds[i].Picker.Type = strings.ToLower(strings.TrimSpace(j.Seeds[i].Picker.Type))
	}
}

// Validate checks everything that can be checked without loading the image.
// Seed coordinates are checked against the image by the fill engine.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Image) == "" {
		return fmt.Errorf("%w: image path is required", ErrInvalidJob)
	}
	if _, err := fill.ParseOrder(j.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if j.Tolerance < 0 || math.IsNaN(j.Tolerance) || math.IsInf(j.Tolerance, 1) {
		return fmt.Errorf("%w: tolerance %g must be a finite number >= 0", ErrInvalidJob, j.Tolerance)
	}
	if j.FrameFreq < 1 {
		return fmt.Errorf("%w: frame_freq %d must be at least 1", ErrInvalidJob, j.FrameFreq)
	}
	if len(j.Seeds) == 0 {
		return fmt.Errorf("%w: at least one seed is required", ErrInvalidJob)
	}
	for i, s := range j.Seeds {
		if s.X < 0 || s.Y < 0 {
			return fmt.Errorf("%w: seed %d has negative coordinates (%d,%d)", ErrInvalidJob, i, s.X, s.Y)
		}
		if err := s.Picker.validate(); err != nil {
			return fmt.Errorf("%w: seed %d: %v", ErrInvalidJob, i, err)
		}
	}
	if a := j.Output.Animation; a != "" && !strings.EqualFold(filepath.Ext(a), ".gif") {
		return fmt.Errorf("%w: animation %s must be a .gif file", ErrInvalidJob, a)
	}
	if j.Output.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidJob, j.Output.Workers)
	}
	if j.Output.Delay < 0 || j.Output.FinalDelay < 0 {
		return fmt.Errorf("%w: animation delays must not be negative", ErrInvalidJob)
	}
	return nil
}

func (p PickerSpec) validate() error {
	switch p.Type {
	case PickerSolid:
		if p.Color == "" {
			return fmt.Errorf("solid picker needs a color")
		}
	case PickerNegative:
	case PickerMosaic:
		if p.Width < 1 {
			return fmt.Errorf("mosaic width %d must be at least 1", p.Width)
		}
	case PickerSoftBorder:
		if p.Radius < 0 || p.Radius != math.Trunc(p.Radius) {
			return fmt.Errorf("soft_border radius %g must be a whole number >= 0", p.Radius)
		}
		if t := p.Tolerance; t != nil && (*t < 0 || math.IsNaN(*t) || math.IsInf(*t, 1)) {
			return fmt.Errorf("soft_border tolerance %g must be a finite number >= 0", *t)
		}
	case PickerBlur:
		if p.Radius <= 0 {
			return fmt.Errorf("blur radius %g must be positive", p.Radius)
		}
	case "":
		return fmt.Errorf("picker type is required")
	default:
		return fmt.Errorf("unknown picker type %q", p.Type)
	}
	return nil
}

// EffectiveTolerance returns the soft border tolerance, falling back to the
// job's tolerance when the picker does not set one.
func (p PickerSpec) EffectiveTolerance(jobTolerance float64) float64 {
	if p.Tolerance != nil {
		return *p.Tolerance
	}
	return jobTolerance
}
