package fill

import (
	"fmt"
	"image"
)

// Animation is an append-only sequence of full-image snapshots recorded
// while a fill runs. Frames are deep copies and never change once added.
type Animation struct {
	frames []*Raster
	filled int
}

// NewAnimation returns an empty animation.
func NewAnimation() *Animation {
	return &Animation{}
}

// AddFrame appends a deep copy of img.
func (a *Animation) AddFrame(img *Raster) {
	a.frames = append(a.frames, img.Clone())
}

// FrameCount returns the number of recorded frames.
func (a *Animation) FrameCount() int {
	return len(a.frames)
}

// Frame returns a copy of frame i.
func (a *Animation) Frame(i int) (*Raster, error) {
	if i < 0 || i >= len(a.frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrOutOfBounds, i, len(a.frames))
	}
	return a.frames[i].Clone(), nil
}

// Last returns a copy of the final frame, or nil for an empty animation.
func (a *Animation) Last() *Raster {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[len(a.frames)-1].Clone()
}

// Images returns the frames as image.Image values for encoders. The returned
// values must be treated as read-only.
func (a *Animation) Images() []image.Image {
	imgs := make([]image.Image, len(a.frames))
	for i, f := range a.frames {
		imgs[i] = f
	}
	return imgs
}

// PixelsFilled returns how many pixels the fill that produced this animation
// recolored, across all seeds.
func (a *Animation) PixelsFilled() int {
	return a.filled
}
