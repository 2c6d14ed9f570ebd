package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func TestNewTransform(t *testing.T) {
	tr := NewTransform(640, 480)
	assert.Equal(t, -1.0, tr.ScaleY)
	assert.Equal(t, 480.0, tr.TranslateY)
	assert.Equal(t, Rect{W: 640, H: 480}, tr.Rect)
}

func TestTransformResize(t *testing.T) {
	tr := NewTransform(640, 480)

	assert.True(t, tr.Resize(800, 480))
	assert.Equal(t, 480.0, tr.TranslateY, "width change keeps the translation")
	assert.Equal(t, 800.0, tr.Rect.W)

	assert.True(t, tr.Resize(800, 600))
	assert.Equal(t, 600.0, tr.TranslateY)
	assert.Equal(t, 600.0, tr.Rect.H)
	assert.Equal(t, -1.0, tr.ScaleY)

	assert.False(t, tr.Resize(800, 600))
}

func TestTransformAff3FlipsRows(t *testing.T) {
	tr := NewTransform(4, 3)
	m := tr.Aff3(4, 3)
	assert.Equal(t, f64.Aff3{1, 0, 0, 0, -1, 3}, m)

	// bottom-up row 0 lands at the bottom of the host, row 2 at the top
	apply := func(y float64) float64 { return m[4]*y + m[5] }
	assert.Equal(t, 3.0, apply(0))
	assert.Equal(t, 0.0, apply(3))

	// stretched while a resize is pending
	tr.Resize(8, 6)
	assert.Equal(t, f64.Aff3{2, 0, 0, 0, -2, 6}, tr.Aff3(4, 3))
}
