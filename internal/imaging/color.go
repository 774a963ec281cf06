package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// ColorResult contains a color value in the representations a fill job uses.
//
// HSLA is the representation the fill engine compares against tolerances, so
// sampling a pixel is the easiest way to choose a seed and a tolerance.
type ColorResult struct {
	Hex  string     `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGBA RGBAColor  `json:"rgba"` // 8-bit components with alpha
	HSLA fill.Pixel `json:"hsla"` // Hue 0-360, saturation/lightness/alpha 0-1
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at the top-left of the image bounds.
// Returns an error if the coordinates are outside the image.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := x+bounds.Min.X, y+bounds.Min.Y
	if !(image.Point{X: px, Y: py}).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.At(px, py)
	n := color.NRGBAModel.Convert(c).(color.NRGBA)

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B),
		RGBA: RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A},
		HSLA: fill.PixelFromColor(c),
	}, nil
}

// ParseHexColor parses a hex color string like "#FF0000", "#FF000080" or the
// short forms "#F00" and "#F008" into an HSLA pixel. The leading '#' is optional.
func ParseHexColor(hex string) (fill.Pixel, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 0 {
		return fill.Pixel{}, fmt.Errorf("empty color string")
	}

	if len(hex) == 3 || len(hex) == 4 {
		var long strings.Builder
		for _, ch := range hex {
			long.WriteRune(ch)
			long.WriteRune(ch)
		}
		hex = long.String()
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fill.Pixel{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	var c color.NRGBA
	switch len(hex) {
	case 6:
		c = color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}
	case 8:
		c = color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}
	default:
		return fill.Pixel{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}

	return fill.PixelFromColor(c), nil
}
