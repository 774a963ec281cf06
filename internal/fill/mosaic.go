package fill

import "fmt"

// MosaicColorPicker flattens each square tile of the snapshot to its average
// color.
//
// Tiles are width pixels on a side, aligned to the image origin (not to any
// seed) and clipped at the right and bottom edges. Every point inside a tile
// receives the same color: the arithmetic mean of each HSLA channel over the
// tile. Tile averages are computed on first use and cached.
type MosaicColorPicker struct {
	width    int
	snapshot *Raster
	tiles    map[int]Pixel
}

// NewMosaicColorPicker returns a mosaic picker with the given tile width.
func NewMosaicColorPicker(width int, snapshot *Raster) (*MosaicColorPicker, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: mosaic tile width %d must be at least 1", ErrConfig, width)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: mosaic picker needs a snapshot", ErrConfig)
	}
	return &MosaicColorPicker{
		width:    width,
		snapshot: snapshot,
		tiles:    make(map[int]Pixel),
	}, nil
}

// Pick implements ColorPicker.
func (m *MosaicColorPicker) Pick(p Point) (Pixel, error) {
	w, h := m.snapshot.Width(), m.snapshot.Height()
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return Pixel{}, fmt.Errorf("%w: no mosaic tile covers (%d,%d) in %dx%d snapshot",
			ErrDegenerateRegion, p.X, p.Y, w, h)
	}
	left := m.width * (p.X / m.width)
	top := m.width * (p.Y / m.width)

	tilesPerRow := (w + m.width - 1) / m.width
	key := (top/m.width)*tilesPerRow + left/m.width
	if c, ok := m.tiles[key]; ok {
		return c, nil
	}

	var sum channelSum
	for y := top; y < top+m.width && y < h; y++ {
		for x := left; x < left+m.width && x < w; x++ {
			c, err := m.snapshot.Read(x, y)
			if err != nil {
				return Pixel{}, err
			}
			sum.add(c)
		}
	}

	avg, ok := sum.mean()
	if !ok {
		return Pixel{}, fmt.Errorf("%w: mosaic tile at (%d,%d) width %d", ErrDegenerateRegion, left, top, m.width)
	}
	m.tiles[key] = avg
	return avg, nil
}
