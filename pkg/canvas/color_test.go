package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    RGB
	}{
		{0, 1, 1, RGB{255, 0, 0}},
		{120, 1, 1, RGB{0, 255, 0}},
		{240, 1, 1, RGB{0, 0, 255}},
		{0, 0, 1, RGB{255, 255, 255}},
		{200, 0.5, 0, RGB{0, 0, 0}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HSVToRGB(tc.h, tc.s, tc.v), "hsv(%v, %v, %v)", tc.h, tc.s, tc.v)
	}
}

func TestPaletteSequence(t *testing.T) {
	p := NewPalette()
	assert.Equal(t, RGB{178, 17, 17}, p.Next())
	assert.Equal(t, RGB{17, 178, 64}, p.Next())
	assert.Equal(t, 2, p.Count())
}

func TestPalettesAreIndependent(t *testing.T) {
	a, b := NewPalette(), NewPalette()
	a.Next()
	a.Next()
	assert.Equal(t, RGB{178, 17, 17}, b.Next())

	seen := map[RGB]bool{}
	for i := 0; i < 20; i++ {
		seen[a.Next()] = true
	}
	assert.Len(t, seen, 20)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", JointColor.Hex())
	assert.Equal(t, "#0a141e", RGB{10, 20, 30}.Hex())
}
