package fill

import (
	"fmt"
	"math"
)

// Seed is a starting coordinate plus the reference color its region is
// measured against. The color is captured when the seed is created and is not
// re-read from the image while the image is being filled.
type Seed struct {
	X     int
	Y     int
	Color Pixel
}

// NewSeed creates a seed at (x, y) whose reference color is the image's
// current color at that position.
func NewSeed(img *Raster, x, y int) (Seed, error) {
	c, err := img.Read(x, y)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: seed outside image: %v", ErrConfig, err)
	}
	return Seed{X: x, Y: y, Color: c}, nil
}

// Point is a pixel coordinate being processed on behalf of a seed. Pickers
// use the Seed back-reference to recover the reference color; it is never
// used to mutate anything.
type Point struct {
	X    int
	Y    int
	Seed Seed
}

// Config describes one fill invocation.
//
// Image is mutated in place. Seeds and Pickers are parallel lists: Pickers[i]
// colors the region grown from Seeds[i]. Seeds are processed in list order and
// the first seed to reach a pixel claims it.
type Config struct {
	Image     *Raster
	Seeds     []Seed
	Pickers   []ColorPicker
	Tolerance float64
	FrameFreq int
}

// Validate checks the configuration before any pixel is touched.
func (c *Config) Validate() error {
	if c.Image == nil {
		return fmt.Errorf("%w: image is nil", ErrConfig)
	}
	if len(c.Seeds) != len(c.Pickers) {
		return fmt.Errorf("%w: %d seeds but %d pickers", ErrConfig, len(c.Seeds), len(c.Pickers))
	}
	if c.FrameFreq < 1 {
		return fmt.Errorf("%w: frame frequency %d must be at least 1", ErrConfig, c.FrameFreq)
	}
	if !validTolerance(c.Tolerance) {
		return fmt.Errorf("%w: tolerance %g must be a finite number >= 0", ErrConfig, c.Tolerance)
	}
	for i, s := range c.Seeds {
		if !c.Image.InBounds(s.X, s.Y) {
			return fmt.Errorf("%w: seed %d at (%d,%d) outside %dx%d image",
				ErrConfig, i, s.X, s.Y, c.Image.Width(), c.Image.Height())
		}
		if c.Pickers[i] == nil {
			return fmt.Errorf("%w: picker %d is nil", ErrConfig, i)
		}
	}
	return nil
}

// validTolerance rejects NaN, which would make every distance test pass, and
// infinities.
func validTolerance(t float64) bool {
	return t >= 0 && !math.IsInf(t, 1)
}
