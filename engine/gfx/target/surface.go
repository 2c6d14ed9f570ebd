// Package target owns the off-screen GL render target and the pixel-pack
// ring used to read its contents back without stalling the pipeline.
package target

import (
	"errors"
	"fmt"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/gfx/glapi"
	"github.com/hubastard/glhost/engine/log"
	"github.com/hubastard/glhost/engine/profiler"
)

var logger = log.New("target")

// ErrReleased is returned when a released surface is asked to transfer.
var ErrReleased = errors.New("target: surface released")

// Surface is a framebuffer with depth and color renderbuffers plus a ring
// of transfer buffers, all sized for one fixed width x height. A size
// change means building a new Surface.
type Surface struct {
	api           glapi.API
	width, height int

	fbo   uint32
	depth uint32
	color uint32
	ring  *ring

	rendered bool
	released bool
}

// New builds a complete render target. Arguments are validated before any
// GL call is made. On failure everything allocated so far is released.
func New(api glapi.API, width, height, buffers int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: render target %dx%d", core.ErrInvalidDimensions, width, height)
	}
	if buffers < 1 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidBufferCount, buffers)
	}

	s := &Surface{api: api, width: width, height: height}
	if err := s.create(buffers); err != nil {
		s.Release()
		return nil, err
	}
	logger.Debugf("created %dx%d target fbo=%d buffers=%v", width, height, s.fbo, s.ring.Ordered())
	return s, nil
}

func (s *Surface) create(buffers int) error {
	api := s.api
	w, h := int32(s.width), int32(s.height)

	s.fbo = api.GenFramebuffer()
	api.BindFramebuffer(glapi.Framebuffer, s.fbo)

	s.depth = api.GenRenderbuffer()
	api.BindRenderbuffer(glapi.Renderbuffer, s.depth)
	api.RenderbufferStorage(glapi.Renderbuffer, glapi.DepthComponent24, w, h)
	api.FramebufferRenderbuffer(glapi.Framebuffer, glapi.DepthAttachment, glapi.Renderbuffer, s.depth)

	s.color = api.GenRenderbuffer()
	api.BindRenderbuffer(glapi.Renderbuffer, s.color)
	api.RenderbufferStorage(glapi.Renderbuffer, glapi.RGBA8, w, h)
	api.FramebufferRenderbuffer(glapi.Framebuffer, glapi.ColorAttachment0, glapi.Renderbuffer, s.color)
	api.BindRenderbuffer(glapi.Renderbuffer, 0)

	status := api.CheckFramebufferStatus(glapi.Framebuffer)
	api.BindFramebuffer(glapi.Framebuffer, 0)
	if status != glapi.FramebufferComplete {
		logger.Errorf("framebuffer %dx%d incomplete: %s", s.width, s.height, glapi.StatusName(status))
		return &core.RenderTargetError{Status: status, Width: s.width, Height: s.height}
	}

	size := s.ByteSize()
	bufs := make([]uint32, buffers)
	for i := range bufs {
		bufs[i] = api.GenBuffer()
		api.BindBuffer(glapi.PixelPackBuffer, bufs[i])
		api.BufferData(glapi.PixelPackBuffer, size, glapi.StreamRead)
	}
	api.BindBuffer(glapi.PixelPackBuffer, 0)
	s.ring = newRing(bufs)
	return nil
}

// Size returns the target dimensions.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// ByteSize is the size of one BGRA frame.
func (s *Surface) ByteSize() int { return s.width * s.height * glapi.BytesPerPixel }

// Framebuffer returns the GL framebuffer name clients render into.
func (s *Surface) Framebuffer() uint32 { return s.fbo }

// HasRenderedFrame reports whether at least one transfer has completed.
func (s *Surface) HasRenderedFrame() bool { return s.rendered }

// Released reports whether Release has run.
func (s *Surface) Released() bool { return s.released }

// TransferBuffers returns the transfer ring in logical order; index 0 is
// the buffer the next transfer writes into.
func (s *Surface) TransferBuffers() []uint32 {
	if s.ring == nil {
		return nil
	}
	return s.ring.Ordered()
}

// Bind makes the framebuffer the draw destination and sizes the viewport.
func (s *Surface) Bind() {
	s.api.BindFramebuffer(glapi.Framebuffer, s.fbo)
	s.api.Viewport(0, 0, int32(s.width), int32(s.height))
}

// Transfer queues a readback of the current frame and copies the previous
// frame's readback into dst. The first call has nothing in flight yet and
// returns the frame it just queued.
func (s *Surface) Transfer(dst []byte) error {
	defer profiler.Start("target.Transfer")()

	if s.released {
		return ErrReleased
	}
	size := s.ByteSize()
	if len(dst) < size {
		return fmt.Errorf("%w: have %d bytes, need %d", core.ErrBitmapTooSmall, len(dst), size)
	}
	api := s.api

	write := s.ring.Front()
	api.BindFramebuffer(glapi.ReadFramebuffer, s.fbo)
	api.BindBuffer(glapi.PixelPackBuffer, write)
	api.ReadPixels(0, 0, int32(s.width), int32(s.height), glapi.BGRA, glapi.UnsignedByte, 0)

	read := write
	if s.rendered {
		read = s.ring.Back()
	}
	api.BindBuffer(glapi.PixelPackBuffer, read)
	data := api.MapBuffer(glapi.PixelPackBuffer, glapi.ReadOnly, size)
	if data == nil {
		api.BindBuffer(glapi.PixelPackBuffer, 0)
		s.ring.Rotate()
		return mapError(glapi.DrainErrors(api))
	}
	copy(dst, data[:size])
	api.UnmapBuffer(glapi.PixelPackBuffer)
	api.BindBuffer(glapi.PixelPackBuffer, 0)

	s.ring.Rotate()
	s.rendered = true
	return nil
}

// mapError reports every flag raised by a failed map. Callers drain
// errors from earlier work before Transfer, so all of them belong here.
func mapError(codes []uint32) error {
	if len(codes) == 0 {
		return &core.TransientGLError{Op: "MapBuffer", Code: glapi.NoError, Name: "mapping refused"}
	}
	errs := make([]error, len(codes))
	for i, code := range codes {
		errs[i] = &core.TransientGLError{Op: "MapBuffer", Code: code, Name: glapi.ErrorName(code)}
	}
	return errors.Join(errs...)
}

// Release deletes every GL object owned by the surface. It is safe to
// call more than once.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	api := s.api
	if s.ring != nil {
		for _, buf := range s.ring.bufs {
			if buf != 0 {
				api.DeleteBuffer(buf)
			}
		}
		s.ring = nil
	}
	if s.color != 0 {
		api.DeleteRenderbuffer(s.color)
		s.color = 0
	}
	if s.depth != 0 {
		api.DeleteRenderbuffer(s.depth)
		s.depth = 0
	}
	if s.fbo != 0 {
		api.DeleteFramebuffer(s.fbo)
		s.fbo = 0
	}
}
