package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBA8(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, White.RGBA8())
	assert.Equal(t, color.NRGBA{R: 20, G: 26, B: 31, A: 255}, Slate.RGBA8())
	assert.Equal(t, color.NRGBA{R: 255, A: 0}, Color{2, -1, 0, 0}.RGBA8())
	assert.Equal(t, color.NRGBA{A: 128}, Black.WithAlpha(0.5).RGBA8())
}
