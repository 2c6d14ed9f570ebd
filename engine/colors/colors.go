// Package colors holds the linear float colors used for GL clears and their
// 8-bit equivalents for host-side composition.
package colors

import "image/color"

// Color is an RGBA color with components in [0, 1], the layout GL clear
// calls take.
type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Slate = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 converts c to a non-premultiplied 8-bit color. Components are
// clamped.
func (c Color) RGBA8() color.NRGBA {
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
