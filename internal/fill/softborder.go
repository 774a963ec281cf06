package fill

import "fmt"

// SoftBorderColorPicker blurs pixels that sit near the edge of a region and
// leaves interior pixels untouched.
//
// For a queried point it gathers every snapshot pixel within radius (Euclidean,
// inclusive). If any gathered pixel is further than tolerance from the seed's
// reference color, the point is near a region boundary and the channel-wise
// average of the disk is returned. Otherwise the point's original color is
// returned unchanged.
type SoftBorderColorPicker struct {
	radius    int
	snapshot  *Raster
	tolerance float64
}

// NewSoftBorderColorPicker returns a soft border picker.
func NewSoftBorderColorPicker(radius int, snapshot *Raster, tolerance float64) (*SoftBorderColorPicker, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: soft border radius %d must not be negative", ErrConfig, radius)
	}
	if !validTolerance(tolerance) {
		return nil, fmt.Errorf("%w: soft border tolerance %g must be a finite number >= 0", ErrConfig, tolerance)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: soft border picker needs a snapshot", ErrConfig)
	}
	return &SoftBorderColorPicker{radius: radius, snapshot: snapshot, tolerance: tolerance}, nil
}

// Pick implements ColorPicker.
func (s *SoftBorderColorPicker) Pick(p Point) (Pixel, error) {
	var sum channelSum
	nearBorder := false
	r2 := s.radius * s.radius

	// Only the disk's bounding box can contain pixels within radius.
	x0, x1 := max(p.X-s.radius, 0), min(p.X+s.radius, s.snapshot.Width()-1)
	y0, y1 := max(p.Y-s.radius, 0), min(p.Y+s.radius, s.snapshot.Height()-1)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			dx, dy := p.X-x, p.Y-y
			if dx*dx+dy*dy > r2 {
				continue
			}
			c, err := s.snapshot.Read(x, y)
			if err != nil {
				return Pixel{}, err
			}
			sum.add(c)
			if p.Seed.Color.Dist(c) > s.tolerance {
				nearBorder = true
			}
		}
	}

	avg, ok := sum.mean()
	if !ok {
		return Pixel{}, fmt.Errorf("%w: soft border disk of radius %d around (%d,%d)",
			ErrDegenerateRegion, s.radius, p.X, p.Y)
	}
	if nearBorder {
		return avg, nil
	}
	return s.snapshot.Read(p.X, p.Y)
}
