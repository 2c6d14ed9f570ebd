// Package host provides a headless host surface that composites presented
// bitmaps into an in-memory image, the way a retained GUI would on paint.
package host

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/hubastard/glhost/engine/core"
)

// Source is anything that can paint into a core.Painter, typically a
// present.Driver.
type Source interface {
	Paint(p core.Painter)
}

// ImageHost is a core.Surface and core.Painter backed by an *image.RGBA.
// Invalidate only marks the host dirty; Compose performs the paint pass.
type ImageHost struct {
	canvas     *image.RGBA
	background color.Color
	scaler     xdraw.Transformer

	dirty         bool
	invalidations int
	paints        int
}

var (
	_ core.Surface = (*ImageHost)(nil)
	_ core.Painter = (*ImageHost)(nil)
)

// NewImageHost returns a host with a width x height canvas.
func NewImageHost(width, height int) *ImageHost {
	return &ImageHost{
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.Black,
		scaler:     xdraw.NearestNeighbor,
	}
}

// SetBackground sets the color the canvas is cleared to before painting.
func (h *ImageHost) SetBackground(c color.Color) { h.background = c }

// SetScaler selects the interpolator used when the bitmap and the layout
// rectangle differ in size.
func (h *ImageHost) SetScaler(s xdraw.Transformer) { h.scaler = s }

// Resize replaces the canvas. The caller forwards the size to the driver.
func (h *ImageHost) Resize(width, height int) {
	h.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	h.dirty = true
}

func (h *ImageHost) Size() (int, int) {
	b := h.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (h *ImageHost) Invalidate() {
	h.dirty = true
	h.invalidations++
}

// Compose runs a paint pass when the host has been invalidated and
// reports whether it did.
func (h *ImageHost) Compose(src Source) bool {
	if !h.dirty {
		return false
	}
	h.dirty = false
	draw.Draw(h.canvas, h.canvas.Bounds(), image.NewUniform(h.background), image.Point{}, draw.Src)
	src.Paint(h)
	return true
}

func (h *ImageHost) DrawBitmap(b *core.Bitmap, t core.Transform) {
	h.scaler.Transform(h.canvas, t.Aff3(b.Width, b.Height), b, b.Bounds(), xdraw.Src, nil)
	h.paints++
}

// Image returns the composited canvas.
func (h *ImageHost) Image() *image.RGBA { return h.canvas }

// Invalidations counts Invalidate calls.
func (h *ImageHost) Invalidations() int { return h.invalidations }

// Paints counts bitmaps drawn.
func (h *ImageHost) Paints() int { return h.paints }
