package fill

import (
	"fmt"

	"github.com/anthonynsimon/bild/blur"
)

// BlurColorPicker replaces pixels with a Gaussian-blurred version of the
// snapshot, softening edges inside the filled region. The blur is computed
// once at construction.
type BlurColorPicker struct {
	blurred *Raster
}

// NewBlurColorPicker blurs snapshot with the given Gaussian radius.
func NewBlurColorPicker(radius float64, snapshot *Raster) (*BlurColorPicker, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: blur radius %g must be positive", ErrConfig, radius)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: blur picker needs a snapshot", ErrConfig)
	}
	blurred, err := RasterFromImage(blur.Gaussian(snapshot, radius))
	if err != nil {
		return nil, fmt.Errorf("failed to convert blurred snapshot: %w", err)
	}
	return &BlurColorPicker{blurred: blurred}, nil
}

// Pick implements ColorPicker.
func (b *BlurColorPicker) Pick(p Point) (Pixel, error) {
	return b.blurred.Read(p.X, p.Y)
}
