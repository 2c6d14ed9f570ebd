package core

import "golang.org/x/image/math/f64"

// Rect is a destination rectangle in host coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Transform places a bottom-up bitmap inside the host's top-down
// coordinate space. It is applied as a vertical flip (ScaleY, always -1)
// followed by a vertical translation of TranslateY, which tracks the
// current height so the flipped rows land back inside Rect.
type Transform struct {
	TranslateY float64
	ScaleY     float64
	Rect       Rect
}

// NewTransform returns the transform for a width x height layout.
func NewTransform(width, height int) Transform {
	return Transform{
		TranslateY: float64(height),
		ScaleY:     -1,
		Rect:       Rect{W: float64(width), H: float64(height)},
	}
}

// Resize updates the components affected by the new layout size. A width
// change only touches the rectangle; a height change also moves the
// translation. It reports whether anything changed.
func (t *Transform) Resize(width, height int) bool {
	changed := false
	if w := float64(width); w != t.Rect.W {
		t.Rect.W = w
		changed = true
	}
	if h := float64(height); h != t.Rect.H {
		t.Rect.H = h
		t.TranslateY = h
		changed = true
	}
	return changed
}

// Aff3 returns the source-to-destination matrix for a bw x bh bitmap.
// The bitmap is stretched to Rect when the sizes disagree, which happens
// while a resize is still being debounced.
func (t Transform) Aff3(bw, bh int) f64.Aff3 {
	sx, sy := 1.0, 1.0
	if bw > 0 {
		sx = t.Rect.W / float64(bw)
	}
	if bh > 0 {
		sy = t.Rect.H / float64(bh)
	}
	return f64.Aff3{
		sx, 0, t.Rect.X,
		0, t.ScaleY * sy, t.Rect.Y + t.TranslateY,
	}
}
