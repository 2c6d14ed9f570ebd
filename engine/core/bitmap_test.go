package core

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitmap(t *testing.T) {
	b, err := NewBitmap(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, b.Stride)
	assert.Len(t, b.Pix, 24)
	w, h := b.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)

	_, err = NewBitmap(0, 2)
	require.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = NewBitmap(2, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBitmapAtReadsBGRA(t *testing.T) {
	b, err := NewBitmap(2, 2)
	require.NoError(t, err)
	i := 1*b.Stride + 1*4
	copy(b.Pix[i:], []byte{10, 20, 30, 40})

	assert.Equal(t, color.RGBA{R: 30, G: 20, B: 10, A: 40}, b.At(1, 1))
	assert.Equal(t, color.RGBA{}, b.At(0, 0))
	assert.Equal(t, color.RGBA{}, b.At(2, 0))
	assert.Equal(t, color.RGBA{}, b.At(-1, 0))
}
