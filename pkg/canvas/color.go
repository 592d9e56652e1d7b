package canvas

import (
	"fmt"
	"math"
)

// RGB is an opaque 24 bit color
type RGB struct {
	R, G, B uint8
}

var (
	White = RGB{255, 255, 255}
	// JointColor marks the endpoints of every segment
	JointColor = RGB{255, 0, 0}
)

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSVToRGB converts hue in degrees [0,360) and saturation, value in [0,1].
// Channels are truncated, not rounded.
func HSVToRGB(h, s, v float64) RGB {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60.0, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}

///////////////////////////////////////////////////////////////////////////////
/// PALETTE
///////////////////////////////////////////////////////////////////////////////

const (
	goldenAngle       = 137.508
	paletteSaturation = 0.9
	paletteValue      = 0.7
)

// Palette hands out well separated colors by stepping the hue by the
// golden angle. The zero value starts at hue 0.
type Palette struct {
	counter int
}

func NewPalette() *Palette {
	return &Palette{}
}

// Next returns the color for the current counter and advances it
func (p *Palette) Next() RGB {
	h := math.Mod(float64(p.counter)*goldenAngle, 360.0)
	p.counter++
	return HSVToRGB(h, paletteSaturation, paletteValue)
}

// Count is the number of colors handed out so far
func (p *Palette) Count() int {
	return p.counter
}
