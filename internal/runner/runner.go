// Package runner executes fill jobs end to end: it loads the source image,
// builds the seeds and color pickers, runs the fill engine and writes the
// requested outputs.
package runner

import (
	"context"
	"fmt"
	"log"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/system"
)

// Result summarizes a completed fill job.
type Result struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Mode          string `json:"mode"`
	Seeds         int    `json:"seeds"`
	PixelsFilled  int    `json:"pixels_filled"`
	FrameCount    int    `json:"frame_count"`
	FinalPath     string `json:"final_path,omitempty"`
	AnimationPath string `json:"animation_path,omitempty"`
	FramesDir     string `json:"frames_dir,omitempty"`
	FramesWritten int    `json:"frames_written,omitempty"`

	// FinalImage is the finished image as base64 PNG when requested.
	FinalImage *imaging.EncodedImage `json:"final_image,omitempty"`
}

// Runner executes jobs against a shared image cache.
type Runner struct {
	cache       *imaging.ImageCache
	checkBudget func(width, height, frameFreq int) error
	verbose     bool
}

// New creates a runner that loads images through cache.
func New(cache *imaging.ImageCache) *Runner {
	return &Runner{
		cache:       cache,
		checkBudget: system.CheckAnimationBudget,
	}
}

// SetVerbose enables progress logging.
func (r *Runner) SetVerbose(v bool) {
	r.verbose = v
}

// Run executes job. Defaults are applied and the job is validated first, so
// callers may pass a partially filled job.
func (r *Runner) Run(ctx context.Context, job *config.Job) (*Result, error) {
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	order, err := fill.ParseOrder(job.Mode)
	if err != nil {
		return nil, err
	}

	img, err := r.cache.LoadRaster(job.Image)
	if err != nil {
		return nil, err
	}

	if err := r.checkBudget(img.Width(), img.Height(), job.FrameFreq); err != nil {
		return nil, err
	}

	cfg, err := buildConfig(job, img)
	if err != nil {
		return nil, err
	}

	r.logf("Filling %s (%dx%d) from %d seeds, %s, tolerance %g, frame_freq %d",
		job.Image, img.Width(), img.Height(), len(cfg.Seeds), order, cfg.Tolerance, cfg.FrameFreq)

	anim, err := fill.Fill(cfg, order)
	if err != nil {
		return nil, fmt.Errorf("fill failed: %w", err)
	}

	r.logf("Filled %d pixels, recorded %d frames", anim.PixelsFilled(), anim.FrameCount())

	result := &Result{
		Width:        img.Width(),
		Height:       img.Height(),
		Mode:         order.String(),
		Seeds:        len(cfg.Seeds),
		PixelsFilled: anim.PixelsFilled(),
		FrameCount:   anim.FrameCount(),
	}
	if err := r.export(ctx, job.Output, anim, result); err != nil {
		return nil, err
	}
	return result, nil
}

// buildConfig turns a job into an engine configuration. Every picker reads
// from one shared snapshot taken before the fill mutates img.
func buildConfig(job *config.Job, img *fill.Raster) (fill.Config, error) {
	snapshot := img.Clone()

	cfg := fill.Config{
		Image:     img,
		Seeds:     make([]fill.Seed, len(job.Seeds)),
		Pickers:   make([]fill.ColorPicker, len(job.Seeds)),
		Tolerance: job.Tolerance,
		FrameFreq: job.FrameFreq,
	}
	for i, s := range job.Seeds {
		seed, err := fill.NewSeed(img, s.X, s.Y)
		if err != nil {
			return fill.Config{}, fmt.Errorf("seed %d: %w", i, err)
		}
		picker, err := buildPicker(s.Picker, snapshot, job.Tolerance)
		if err != nil {
			return fill.Config{}, fmt.Errorf("seed %d: %w", i, err)
		}
		cfg.Seeds[i] = seed
		cfg.Pickers[i] = picker
	}
	return cfg, nil
}

func buildPicker(spec config.PickerSpec, snapshot *fill.Raster, jobTolerance float64) (fill.ColorPicker, error) {
	switch spec.Type {
	case config.PickerSolid:
		c, err := imaging.ParseHexColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: solid picker: %v", fill.ErrConfig, err)
		}
		return fill.NewSolidColorPicker(c), nil
	case config.PickerNegative:
		p, err := fill.NewNegativeColorPicker(snapshot)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PickerMosaic:
		p, err := fill.NewMosaicColorPicker(spec.Width, snapshot)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PickerSoftBorder:
		p, err := fill.NewSoftBorderColorPicker(int(spec.Radius), snapshot, spec.EffectiveTolerance(jobTolerance))
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PickerBlur:
		p, err := fill.NewBlurColorPicker(spec.Radius, snapshot)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown picker type %q", fill.ErrConfig, spec.Type)
	}
}

func (r *Runner) export(ctx context.Context, out config.Output, anim *fill.Animation, result *Result) error {
	final := anim.Last()

	if out.Final != "" {
		if err := imaging.SaveImage(final, out.Final); err != nil {
			return err
		}
		result.FinalPath = out.Final
		r.logf("Wrote final image %s", out.Final)
	}

	if out.Animation != "" {
		if err := imaging.WriteGIF(out.Animation, anim.Images(), out.Delay, out.FinalDelay); err != nil {
			return err
		}
		result.AnimationPath = out.Animation
		r.logf("Wrote %d-frame animation %s", anim.FrameCount(), out.Animation)
	}

	if out.FramesDir != "" {
		paths, err := imaging.WriteFrames(ctx, out.FramesDir, anim.Images(), out.Workers)
		if err != nil {
			return fmt.Errorf("failed to write frames: %w", err)
		}
		result.FramesDir = out.FramesDir
		result.FramesWritten = len(paths)
		r.logf("Wrote %d frames to %s", len(paths), out.FramesDir)
	}

	if out.InlineFinal {
		encoded, err := imaging.EncodePNGBase64(final)
		if err != nil {
			return err
		}
		result.FinalImage = encoded
	}
	return nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.verbose {
		log.Printf(format, args...)
	}
}
