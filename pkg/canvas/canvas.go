package canvas

import (
	"image"
	"image/color"
	"math"
)

///////////////////////////////////////////////////////////////////////////////
/// CANVAS
///////////////////////////////////////////////////////////////////////////////

// DefaultSize is the width and height of the canvas the interpreter draws on
const DefaultSize = 300

// ArcSteps is the number of equal angular steps an arc is sampled with
const ArcSteps = 200

// Canvas is a fixed size grid of 24 bit pixels. The origin is the top left
// corner and rows are stored top to bottom, each pixel as blue, green, red.
type Canvas struct {
	Width, Height int
	pix           []uint8
}

// New allocates a white canvas of the given dimensions
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pix := make([]uint8, width*height*3)
	for i := range pix {
		pix[i] = 255
	}
	return &Canvas{Width: width, Height: height, pix: pix}
}

// Set paints a single pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, rgb RGB) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	i := (y*c.Width + x) * 3
	c.pix[i+0] = rgb.B
	c.pix[i+1] = rgb.G
	c.pix[i+2] = rgb.R
}

// Get returns the pixel at x,y and false when it lies outside the canvas
func (c *Canvas) Get(x, y int) (RGB, bool) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return RGB{}, false
	}
	i := (y*c.Width + x) * 3
	return RGB{R: c.pix[i+2], G: c.pix[i+1], B: c.pix[i+0]}, true
}

// DrawPoint stamps a 3x3 square centred on x,y, clipped to the canvas
func (c *Canvas) DrawPoint(x, y int, rgb RGB) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy, rgb)
		}
	}
}

// DrawLine rasterises the segment x0,y0 -> x1,y1 with Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, rgb RGB) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	e := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			c.Set(y, x, rgb)
		} else {
			c.Set(x, y, rgb)
		}
		e -= dy
		if e < 0 {
			y += ystep
			e += dx
		}
	}
}

// DrawArc samples the circular arc from x0,y0 to x1,y1 around cx,cy.
// Angles are measured in image space where y grows downwards, so a
// clockwise arc is swept with increasing angle. The sweep is split into
// ArcSteps equal steps and a single pixel is set at each of the
// ArcSteps+1 samples.
func (c *Canvas) DrawArc(x0, y0, x1, y1, cx, cy int, clockwise bool, rgb RGB) {
	start := math.Atan2(float64(y0-cy), float64(x0-cx))
	end := math.Atan2(float64(y1-cy), float64(x1-cx))
	radius := math.Hypot(float64(x0-cx), float64(y0-cy))

	if clockwise {
		if end < start {
			end += 2 * math.Pi
		}
	} else if end > start {
		end -= 2 * math.Pi
	}

	step := (end - start) / ArcSteps
	for i := 0; i <= ArcSteps; i++ {
		a := start + step*float64(i)
		x := int(math.Round(float64(cx) + radius*math.Cos(a)))
		y := int(math.Round(float64(cy) + radius*math.Sin(a)))
		c.Set(x, y, rgb)
	}
}

// ColorModel, Bounds and At make a Canvas usable as an image.Image

func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

func (c *Canvas) At(x, y int) color.Color {
	rgb, ok := c.Get(x, y)
	if !ok {
		return color.RGBA{}
	}
	return rgb
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
