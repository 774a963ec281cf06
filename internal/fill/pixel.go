package fill

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Pixel is a single color in HSLA space.
//
// Channel ranges:
//   - H: hue in degrees, 0 <= H < 360
//   - S: saturation, 0-1
//   - L: lightness, 0-1
//   - A: alpha (opacity), 0-1
//
// Pixel implements color.Color so a Raster can be handed directly to any
// encoder or filter that accepts image.Image.
type Pixel struct {
	H float64 `json:"h" yaml:"h"`
	S float64 `json:"s" yaml:"s"`
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
}

// PixelModel converts any color.Color into a Pixel.
var PixelModel = color.ModelFunc(func(c color.Color) color.Color {
	return PixelFromColor(c)
})

// PixelFromColor converts a Go color into HSLA.
//
// The color is first reduced to non-premultiplied 8-bit RGBA so that the hue,
// saturation and lightness of translucent pixels are not darkened by their
// alpha. Fully transparent pixels keep their (zeroed) RGB channels.
func PixelFromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	cf := colorful.Color{
		R: float64(n.R) / 255.0,
		G: float64(n.G) / 255.0,
		B: float64(n.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	return Pixel{H: h, S: s, L: l, A: float64(n.A) / 255.0}
}

// RGBA implements color.Color. The HSL channels are converted through
// go-colorful and clamped to the displayable gamut.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	cf := colorful.Hsl(p.H, clamp01(p.S), clamp01(p.L)).Clamped()
	r8, g8, b8 := cf.RGB255()
	a8 := uint8(math.Round(clamp01(p.A) * 255.0))
	return color.NRGBA{R: r8, G: g8, B: b8, A: a8}.RGBA()
}

// Dist returns the distance between two colors.
//
// Both colors are placed in the HSL double cone, (s·cos h, s·sin h, l), and
// the Euclidean distance between those points is returned. Hue wraps around
// naturally, so hues 359 and 1 are close. Alpha does not participate.
// Identical colors have distance 0; the largest possible distance is about 2.2
// (opposite fully saturated hues at opposite lightness extremes).
func (p Pixel) Dist(other Pixel) float64 {
	h1 := p.H * math.Pi / 180.0
	h2 := other.H * math.Pi / 180.0

	dx := p.S*math.Cos(h1) - other.S*math.Cos(h2)
	dy := p.S*math.Sin(h1) - other.S*math.Sin(h2)
	dl := p.L - other.L

	return math.Sqrt(dx*dx + dy*dy + dl*dl)
}

// Hex returns the color as "#RRGGBB" (alpha excluded).
func (p Pixel) Hex() string {
	r, g, b := colorful.Hsl(p.H, clamp01(p.S), clamp01(p.L)).Clamped().RGB255()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func (p Pixel) String() string {
	return fmt.Sprintf("hsla(%.1f, %.3f, %.3f, %.3f)", p.H, p.S, p.L, p.A)
}

// channelSum accumulates the arithmetic mean of each HSLA channel.
type channelSum struct {
	h, s, l, a float64
	n          int
}

func (c *channelSum) add(p Pixel) {
	c.h += p.H
	c.s += p.S
	c.l += p.L
	c.a += p.A
	c.n++
}

func (c *channelSum) mean() (Pixel, bool) {
	if c.n == 0 {
		return Pixel{}, false
	}
	n := float64(c.n)
	return Pixel{H: c.h / n, S: c.s / n, L: c.l / n, A: c.a / n}, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
