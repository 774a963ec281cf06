package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
)

// MaxPreviewScale bounds the zoom factor of a seed preview.
const MaxPreviewScale = 16

// PreviewOptions controls SeedPreview.
type PreviewOptions struct {
	// GridSpacing is the distance between grid lines in source pixels.
	// Zero disables the grid.
	GridSpacing int

	// ShowCoordinates labels every grid intersection with its source
	// coordinates.
	ShowCoordinates bool

	// Scale is an integer zoom factor. Zooming is nearest-neighbor so every
	// source pixel becomes a Scale×Scale block and seeds stay addressable.
	Scale int

	// GridColor and MarkerColor are hex colors; empty selects the default.
	GridColor   string
	MarkerColor string

	// Seeds are marked with a crosshair and their 1-based index.
	Seeds []image.Point
}

// PreviewResult is a rendered seed preview.
type PreviewResult struct {
	EncodedImage
	GridSpacing int `json:"grid_spacing,omitempty"`
	Scale       int `json:"scale"`

	// SeedColors holds the color under each seed, in seed order. These are
	// the reference colors a fill would compare against.
	SeedColors []ColorResult `json:"seed_colors,omitempty"`
}

var (
	defaultGridColor   = color.NRGBA{255, 0, 0, 128}
	defaultMarkerColor = color.NRGBA{0, 255, 255, 255}
)

// SeedPreview renders img with an optional coordinate grid and seed markers
// so seed positions can be checked before a fill is run.
func SeedPreview(img image.Image, opts PreviewOptions) (*PreviewResult, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.Scale < 1 || opts.Scale > MaxPreviewScale {
		return nil, fmt.Errorf("scale %d must be between 1 and %d", opts.Scale, MaxPreviewScale)
	}
	if opts.GridSpacing < 0 {
		return nil, fmt.Errorf("grid spacing %d must not be negative", opts.GridSpacing)
	}
	gridColor, err := previewColor(opts.GridColor, defaultGridColor)
	if err != nil {
		return nil, fmt.Errorf("grid color: %w", err)
	}
	markerColor, err := previewColor(opts.MarkerColor, defaultMarkerColor)
	if err != nil {
		return nil, fmt.Errorf("marker color: %w", err)
	}

	seedColors := make([]ColorResult, len(opts.Seeds))
	for i, p := range opts.Seeds {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i+1, err)
		}
		seedColors[i] = *c
	}

	bounds := img.Bounds()
	w, h, scale := bounds.Dx(), bounds.Dy(), opts.Scale

	// Zoom before drawing so lines and labels stay one pixel wide.
	var canvas *image.NRGBA
	if scale > 1 {
		canvas = imaging.Resize(img, w*scale, h*scale, imaging.NearestNeighbor)
	} else {
		canvas = imaging.Clone(img)
	}
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()

	if g := opts.GridSpacing; g > 0 {
		for x := g; x < w; x += g {
			fillRect(canvas, image.Rect(x*scale, 0, x*scale+1, ch), gridColor)
		}
		for y := g; y < h; y += g {
			fillRect(canvas, image.Rect(0, y*scale, cw, y*scale+1), gridColor)
		}
		if opts.ShowCoordinates {
			for y := g; y < h; y += g {
				for x := g; x < w; x += g {
					drawLabel(canvas, x*scale+2, y*scale+2, fmt.Sprintf("%d,%d", x, y))
				}
			}
		}
	}

	arm := 3 + scale
	for i, p := range opts.Seeds {
		cx, cy := p.X*scale+scale/2, p.Y*scale+scale/2
		fillRect(canvas, image.Rect(cx-arm, cy, cx+arm+1, cy+1), markerColor)
		fillRect(canvas, image.Rect(cx, cy-arm, cx+1, cy+arm+1), markerColor)
		drawLabel(canvas, cx+arm+2, cy-arm, strconv.Itoa(i+1))
	}

	encoded, err := EncodePNGBase64(canvas)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		EncodedImage: *encoded,
		GridSpacing:  opts.GridSpacing,
		Scale:        scale,
		SeedColors:   seedColors,
	}, nil
}

func previewColor(hex string, fallback color.NRGBA) (color.Color, error) {
	if hex == "" {
		return fallback, nil
	}
	p, err := ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	return color.NRGBAModel.Convert(p), nil
}

// fillRect composites c over r, clipped to the canvas.
func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// glyphs is a 3x5 bitmap font for digits and the comma. Each row is three
// bits, most significant bit on the left.
var glyphs = map[rune][5]uint8{
	'0': {7, 5, 5, 5, 7},
	'1': {2, 6, 2, 2, 7},
	'2': {7, 1, 7, 4, 7},
	'3': {7, 1, 7, 1, 7},
	'4': {5, 5, 7, 1, 1},
	'5': {7, 4, 7, 1, 7},
	'6': {7, 4, 7, 5, 7},
	'7': {7, 1, 1, 1, 1},
	'8': {7, 5, 7, 5, 7},
	'9': {7, 5, 7, 1, 7},
	',': {0, 0, 0, 2, 2},
}

var (
	labelFG = color.NRGBA{255, 255, 255, 255}
	labelBG = color.NRGBA{0, 0, 0, 180}
)

// drawLabel writes text at (x, y) in white on a translucent black box.
// Runes without a glyph leave a gap.
func drawLabel(dst *image.NRGBA, x, y int, text string) {
	const advance = 4
	fillRect(dst, image.Rect(x-1, y-1, x+len(text)*advance, y+7), labelBG)

	bounds := dst.Bounds()
	for i, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for row, bits := range glyph {
			for col := 0; col < 3; col++ {
				if bits&(4>>col) == 0 {
					continue
				}
				p := image.Pt(x+i*advance+col, y+row)
				if p.In(bounds) {
					dst.SetNRGBA(p.X, p.Y, labelFG)
				}
			}
		}
	}
}
