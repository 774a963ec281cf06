package fill

import (
	"fmt"
	"math"
)

// ColorPicker computes the replacement color for a pixel being filled.
//
// Pickers that derive their output from image content read a snapshot taken
// before the fill started, never the raster the engine is mutating. A
// picker's answer for one pixel therefore never depends on pixels already
// rewritten earlier in the same fill.
type ColorPicker interface {
	Pick(p Point) (Pixel, error)
}

// NegativeColorPicker inverts colors: the hue is rotated half way around the
// color wheel, lightness is mirrored and the result is made fully opaque.
type NegativeColorPicker struct {
	snapshot *Raster
}

// NewNegativeColorPicker returns a picker that inverts colors read from snapshot.
func NewNegativeColorPicker(snapshot *Raster) (*NegativeColorPicker, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: negative picker needs a snapshot", ErrConfig)
	}
	return &NegativeColorPicker{snapshot: snapshot}, nil
}

// Pick implements ColorPicker.
func (n *NegativeColorPicker) Pick(p Point) (Pixel, error) {
	orig, err := n.snapshot.Read(p.X, p.Y)
	if err != nil {
		return Pixel{}, err
	}
	return Pixel{
		H: math.Mod(orig.H+180.0, 360.0),
		S: orig.S,
		L: 1.0 - orig.L,
		A: 1.0,
	}, nil
}

// SolidColorPicker paints every pixel with one color, the classic paint
// bucket.
type SolidColorPicker struct {
	color Pixel
}

// NewSolidColorPicker returns a picker that always answers c.
func NewSolidColorPicker(c Pixel) *SolidColorPicker {
	return &SolidColorPicker{color: c}
}

// Pick implements ColorPicker.
func (s *SolidColorPicker) Pick(Point) (Pixel, error) {
	return s.color, nil
}
