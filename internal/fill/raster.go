package fill

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is a mutable width×height grid of HSLA pixels.
//
// Every Read and Write is bounds-checked. The grid uses the standard image
// coordinate system: (0,0) is the top-left corner, X grows rightward and Y
// grows downward. Raster also satisfies image.Image so encoders and filters
// can consume it directly; At returns the zero Pixel outside the bounds, as
// the image.Image contract requires.
//
// A Raster is not safe for concurrent mutation. A fill call owns its image
// exclusively for the duration of the call.
type Raster struct {
	width, height int
	pix           []Pixel
}

// NewRaster creates a raster of the given size with every pixel zeroed
// (black, fully transparent).
func NewRaster(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: raster size %dx%d must be at least 1x1", ErrConfig, width, height)
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}, nil
}

// NewUniformRaster creates a raster filled with a single color.
func NewUniformRaster(width, height int, c Pixel) (*Raster, error) {
	r, err := NewRaster(width, height)
	if err != nil {
		return nil, err
	}
	for i := range r.pix {
		r.pix[i] = c
	}
	return r, nil
}

// RasterFromImage converts any image into a raster. The result is always
// rebased so that the image's top-left corner becomes (0,0).
func RasterFromImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	r, err := NewRaster(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.pix[y*r.width+x] = PixelFromColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}
	return r, nil
}

// Width returns the number of columns.
func (r *Raster) Width() int { return r.width }

// Height returns the number of rows.
func (r *Raster) Height() int { return r.height }

// InBounds reports whether (x, y) addresses a pixel of the raster.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Read returns the pixel at (x, y).
func (r *Raster) Read(x, y int) (Pixel, error) {
	if !r.InBounds(x, y) {
		return Pixel{}, fmt.Errorf("%w: read (%d,%d) in %dx%d raster", ErrOutOfBounds, x, y, r.width, r.height)
	}
	return r.pix[y*r.width+x], nil
}

// Write replaces the pixel at (x, y).
func (r *Raster) Write(x, y int, c Pixel) error {
	if !r.InBounds(x, y) {
		return fmt.Errorf("%w: write (%d,%d) in %dx%d raster", ErrOutOfBounds, x, y, r.width, r.height)
	}
	r.pix[y*r.width+x] = c
	return nil
}

// Clone returns a deep copy that shares no storage with r.
func (r *Raster) Clone() *Raster {
	pix := make([]Pixel, len(r.pix))
	copy(pix, r.pix)
	return &Raster{width: r.width, height: r.height, pix: pix}
}

// Equal reports whether both rasters have the same size and identical pixels.
func (r *Raster) Equal(other *Raster) bool {
	if other == nil || r.width != other.width || r.height != other.height {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return PixelModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !r.InBounds(x, y) {
		return Pixel{}
	}
	return r.pix[y*r.width+x]
}
