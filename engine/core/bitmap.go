package core

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap is the CPU-side BGRA8 image the host displays. Rows are stored
// bottom-up, exactly as GL reads them back; hosts flip them through the
// presentation Transform rather than by copying.
type Bitmap struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

var _ image.Image = (*Bitmap)(nil)

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bitmap %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}, nil
}

func (b *Bitmap) ColorModel() color.Model { return color.RGBAModel }

func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

func (b *Bitmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.RGBA{}
	}
	i := y*b.Stride + x*4
	p := b.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
}

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() (int, int) { return b.Width, b.Height }
