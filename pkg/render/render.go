package render

import (
	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/canvas"
	"github.com/richard-senior/gcode2bmp/pkg/geometry"
)

// Render draws shapes onto a new white canvas, each shape in the next
// color of a fresh palette
func Render(shapes []*geometry.Shape, width, height int) *canvas.Canvas {
	c := canvas.New(width, height)
	Draw(c, shapes, canvas.NewPalette())
	return c
}

// Draw renders shapes onto dst, taking one palette color per shape at
// the moment the shape is drawn
func Draw(dst geometry.Surface, shapes []*geometry.Shape, palette *canvas.Palette) {
	for i, s := range shapes {
		color := palette.Next()
		logger.Debug("Drawing shape %d: %d segments in %s", i, s.Len(), color.Hex())
		s.Render(dst, color)
	}
	logger.Debug("Palette handed out %d colors", palette.Count())
}

// Colors returns the colors Render would give n shapes
func Colors(n int) []canvas.RGB {
	p := canvas.NewPalette()
	ret := make([]canvas.RGB, n)
	for i := range ret {
		ret[i] = p.Next()
	}
	return ret
}
