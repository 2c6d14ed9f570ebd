// Package glfake is an in-memory glapi.API used by tests.
//
// It tracks object lifetimes, binding points and pixel-pack traffic. Every
// ReadPixels stamps the destination buffer with a monotonically increasing
// sequence byte, so a test can tell which issued transfer a mapping returned.
package glfake

import (
	"github.com/hubastard/glhost/engine/gfx/glapi"
)

type renderbuffer struct {
	format        uint32
	width, height int32
}

type framebuffer struct {
	attachments map[uint32]uint32
}

type buffer struct {
	data   []byte
	usage  uint32
	mapped bool
}

// GL is a fake GL context. The zero value is not usable; call New.
type GL struct {
	next uint32

	framebuffers  map[uint32]*framebuffer
	renderbuffers map[uint32]*renderbuffer
	buffers       map[uint32]*buffer

	readFB, drawFB uint32
	boundRB        uint32
	boundPack      uint32
	viewport       [4]int32

	// Status, when non-zero, is returned by CheckFramebufferStatus instead
	// of the computed completeness.
	Status uint32
	// RefuseMap makes MapBuffer fail.
	RefuseMap bool

	pending []uint32
	seq     byte

	// Calls counts every API call made.
	Calls int
	// Reads lists the buffers ReadPixels wrote into, in issue order.
	Reads []uint32
	// Maps lists the buffers mapped for reading, in order.
	Maps []uint32
	// Stamps lists the sequence byte each ReadPixels wrote, parallel to Reads.
	Stamps []byte
}

var _ glapi.API = (*GL)(nil)

func New() *GL {
	return &GL{
		framebuffers:  make(map[uint32]*framebuffer),
		renderbuffers: make(map[uint32]*renderbuffer),
		buffers:       make(map[uint32]*buffer),
	}
}

func (g *GL) gen() uint32 {
	g.next++
	return g.next
}

// InjectError queues error codes to be returned by GetError.
func (g *GL) InjectError(codes ...uint32) {
	g.pending = append(g.pending, codes...)
}

func (g *GL) record(code uint32) {
	g.pending = append(g.pending, code)
}

// Live returns the number of framebuffers, renderbuffers and buffers alive.
func (g *GL) Live() int {
	return len(g.framebuffers) + len(g.renderbuffers) + len(g.buffers)
}

// BoundDraw returns the framebuffer bound for drawing.
func (g *GL) BoundDraw() uint32 { return g.drawFB }

// LastViewport returns the last viewport set.
func (g *GL) LastViewport() [4]int32 { return g.viewport }

// BufferSize returns the allocation size of buf, or -1 if it does not exist.
func (g *GL) BufferSize(buf uint32) int {
	b, ok := g.buffers[buf]
	if !ok {
		return -1
	}
	return len(b.data)
}

// BufferUsage returns the usage hint buf was specified with.
func (g *GL) BufferUsage(buf uint32) uint32 {
	if b, ok := g.buffers[buf]; ok {
		return b.usage
	}
	return 0
}

// Renderbuffer reports the storage of rb.
func (g *GL) Renderbuffer(rb uint32) (format uint32, width, height int32, ok bool) {
	r, ok := g.renderbuffers[rb]
	if !ok {
		return 0, 0, 0, false
	}
	return r.format, r.width, r.height, true
}

// Attachment returns the renderbuffer attached to fb at attachment.
func (g *GL) Attachment(fb, attachment uint32) uint32 {
	f, ok := g.framebuffers[fb]
	if !ok {
		return 0
	}
	return f.attachments[attachment]
}

func (g *GL) GenFramebuffer() uint32 {
	g.Calls++
	id := g.gen()
	g.framebuffers[id] = &framebuffer{attachments: make(map[uint32]uint32)}
	return id
}

func (g *GL) DeleteFramebuffer(fb uint32) {
	g.Calls++
	delete(g.framebuffers, fb)
	if g.readFB == fb {
		g.readFB = 0
	}
	if g.drawFB == fb {
		g.drawFB = 0
	}
}

func (g *GL) IsFramebuffer(fb uint32) bool {
	g.Calls++
	_, ok := g.framebuffers[fb]
	return ok
}

func (g *GL) BindFramebuffer(target, fb uint32) {
	g.Calls++
	if _, ok := g.framebuffers[fb]; fb != 0 && !ok {
		g.record(glapi.InvalidOperation)
		return
	}
	switch target {
	case glapi.Framebuffer:
		g.readFB, g.drawFB = fb, fb
	case glapi.ReadFramebuffer:
		g.readFB = fb
	case glapi.DrawFramebuffer:
		g.drawFB = fb
	default:
		g.record(glapi.InvalidEnum)
	}
}

func (g *GL) CheckFramebufferStatus(target uint32) uint32 {
	g.Calls++
	if g.Status != 0 {
		return g.Status
	}
	fb := g.drawFB
	if target == glapi.ReadFramebuffer {
		fb = g.readFB
	}
	f, ok := g.framebuffers[fb]
	if !ok {
		return glapi.FramebufferUnsupported
	}
	if len(f.attachments) == 0 {
		return glapi.IncompleteMissing
	}
	for _, rb := range f.attachments {
		r, ok := g.renderbuffers[rb]
		if !ok || r.width <= 0 || r.height <= 0 {
			return glapi.IncompleteAttachment
		}
	}
	return glapi.FramebufferComplete
}

func (g *GL) GenRenderbuffer() uint32 {
	g.Calls++
	id := g.gen()
	g.renderbuffers[id] = &renderbuffer{}
	return id
}

func (g *GL) DeleteRenderbuffer(rb uint32) {
	g.Calls++
	delete(g.renderbuffers, rb)
	if g.boundRB == rb {
		g.boundRB = 0
	}
}

func (g *GL) IsRenderbuffer(rb uint32) bool {
	g.Calls++
	_, ok := g.renderbuffers[rb]
	return ok
}

func (g *GL) BindRenderbuffer(target, rb uint32) {
	g.Calls++
	g.boundRB = rb
}

func (g *GL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	g.Calls++
	r, ok := g.renderbuffers[g.boundRB]
	if !ok {
		g.record(glapi.InvalidOperation)
		return
	}
	r.format, r.width, r.height = internalFormat, width, height
}

func (g *GL) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	g.Calls++
	f, ok := g.framebuffers[g.drawFB]
	if !ok {
		g.record(glapi.InvalidOperation)
		return
	}
	f.attachments[attachment] = rb
}

func (g *GL) GenBuffer() uint32 {
	g.Calls++
	id := g.gen()
	g.buffers[id] = &buffer{}
	return id
}

func (g *GL) DeleteBuffer(buf uint32) {
	g.Calls++
	delete(g.buffers, buf)
	if g.boundPack == buf {
		g.boundPack = 0
	}
}

func (g *GL) IsBuffer(buf uint32) bool {
	g.Calls++
	_, ok := g.buffers[buf]
	return ok
}

func (g *GL) BindBuffer(target, buf uint32) {
	g.Calls++
	if target != glapi.PixelPackBuffer {
		g.record(glapi.InvalidEnum)
		return
	}
	g.boundPack = buf
}

func (g *GL) BufferData(target uint32, size int, usage uint32) {
	g.Calls++
	b, ok := g.buffers[g.boundPack]
	if !ok {
		g.record(glapi.InvalidOperation)
		return
	}
	b.data = make([]byte, size)
	b.usage = usage
}

func (g *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, offset int) {
	g.Calls++
	b, ok := g.buffers[g.boundPack]
	if !ok {
		g.record(glapi.InvalidOperation)
		return
	}
	if _, ok := g.framebuffers[g.readFB]; !ok {
		g.record(glapi.InvalidFramebufferOperation)
		return
	}
	n := int(width) * int(height) * glapi.BytesPerPixel
	if offset+n > len(b.data) {
		g.record(glapi.InvalidOperation)
		return
	}
	g.seq++
	for i := offset; i < offset+n; i++ {
		b.data[i] = g.seq
	}
	g.Reads = append(g.Reads, g.boundPack)
	g.Stamps = append(g.Stamps, g.seq)
}

func (g *GL) MapBuffer(target, access uint32, size int) []byte {
	g.Calls++
	b, ok := g.buffers[g.boundPack]
	if !ok || b.mapped || g.RefuseMap || size > len(b.data) {
		g.record(glapi.InvalidOperation)
		return nil
	}
	b.mapped = true
	g.Maps = append(g.Maps, g.boundPack)
	return b.data[:size]
}

func (g *GL) UnmapBuffer(target uint32) bool {
	g.Calls++
	b, ok := g.buffers[g.boundPack]
	if !ok || !b.mapped {
		g.record(glapi.InvalidOperation)
		return false
	}
	b.mapped = false
	return true
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.Calls++
	g.viewport = [4]int32{x, y, width, height}
}

func (g *GL) GetError() uint32 {
	g.Calls++
	if len(g.pending) == 0 {
		return glapi.NoError
	}
	code := g.pending[0]
	g.pending = g.pending[1:]
	return code
}
