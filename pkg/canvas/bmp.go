package canvas

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

///////////////////////////////////////////////////////////////////////////////
/// BMP
///////////////////////////////////////////////////////////////////////////////

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	bitsPerPixel   = 24
	// 2835 pixels per metre is roughly 72 DPI
	pixelsPerMetre = 2835
)

// fileHeader is the BITMAPFILEHEADER followed by the BITMAPINFOHEADER.
// binary.Write lays the fields out without padding, little endian.
type fileHeader struct {
	Type          [2]byte
	FileSize      uint32
	Reserved1     uint16
	Reserved2     uint16
	PixelOffset   uint32
	InfoSize      uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	ImageSize     uint32
	XPelsPerMetre int32
	YPelsPerMetre int32
	ColorsUsed    uint32
	ColorsImp     uint32
}

// Stride is the length in bytes of one padded pixel row in the file
func (c *Canvas) Stride() int {
	return ((c.Width*3 + 3) / 4) * 4
}

// Encode writes the canvas as an uncompressed 24 bit bitmap with rows
// stored bottom up
func (c *Canvas) Encode(w io.Writer) error {
	stride := c.Stride()
	dataSize := stride * c.Height

	h := fileHeader{
		Type:          [2]byte{'B', 'M'},
		FileSize:      uint32(fileHeaderSize + infoHeaderSize + dataSize),
		PixelOffset:   fileHeaderSize + infoHeaderSize,
		InfoSize:      infoHeaderSize,
		Width:         int32(c.Width),
		Height:        int32(c.Height),
		Planes:        1,
		BitCount:      bitsPerPixel,
		ImageSize:     uint32(dataSize),
		XPelsPerMetre: pixelsPerMetre,
		YPelsPerMetre: pixelsPerMetre,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write bitmap header: %w", err)
	}

	row := make([]byte, stride)
	for y := c.Height - 1; y >= 0; y-- {
		copy(row, c.pix[y*c.Width*3:(y+1)*c.Width*3])
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write bitmap row %d: %w", y, err)
		}
	}
	return nil
}

// Save encodes the canvas into the file at path, replacing it
func (c *Canvas) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := c.Encode(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Decode reads a bitmap back into a canvas
func Decode(r io.Reader) (*Canvas, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bitmap: %w", err)
	}
	return FromImage(img), nil
}

// DecodeConfig returns the dimensions recorded in a bitmap header
func DecodeConfig(r io.Reader) (image.Config, error) {
	return bmp.DecodeConfig(r)
}

// Load reads the bitmap at path
func Load(path string) (*Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// FromImage copies any image into a new canvas, dropping alpha
func FromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := New(b.Dx(), b.Dy())
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c.Set(x, y, RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return c
}
