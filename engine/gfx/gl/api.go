package glbackend

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/glhost/engine/gfx/glapi"
	"github.com/hubastard/glhost/engine/log"
)

var logger = log.New("gl")

var (
	initOnce sync.Once
	initErr  error
)

// API is glapi.API over the go-gl bindings. Function pointers are resolved
// once, against whichever context is current on the first Load.
type API struct{}

var _ glapi.API = API{}

// Load resolves GL entry points. A context must be current.
func Load() (glapi.API, error) {
	initOnce.Do(func() {
		if initErr = gl.Init(); initErr != nil {
			return
		}
		logger.Infof("GL: %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	})
	if initErr != nil {
		return nil, fmt.Errorf("gl init: %w", initErr)
	}
	return API{}, nil
}

func (API) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (API) DeleteFramebuffer(fb uint32)            { gl.DeleteFramebuffers(1, &fb) }
func (API) IsFramebuffer(fb uint32) bool           { return gl.IsFramebuffer(fb) }
func (API) BindFramebuffer(target, fb uint32)      { gl.BindFramebuffer(target, fb) }
func (API) CheckFramebufferStatus(t uint32) uint32 { return gl.CheckFramebufferStatus(t) }

func (API) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (API) DeleteRenderbuffer(rb uint32)       { gl.DeleteRenderbuffers(1, &rb) }
func (API) IsRenderbuffer(rb uint32) bool      { return gl.IsRenderbuffer(rb) }
func (API) BindRenderbuffer(target, rb uint32) { gl.BindRenderbuffer(target, rb) }

func (API) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (API) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}

func (API) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (API) DeleteBuffer(buf uint32)       { gl.DeleteBuffers(1, &buf) }
func (API) IsBuffer(buf uint32) bool      { return gl.IsBuffer(buf) }
func (API) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }

func (API) BufferData(target uint32, size int, usage uint32) {
	gl.BufferData(target, size, nil, usage)
}

func (API) ReadPixels(x, y, width, height int32, format, xtype uint32, offset int) {
	gl.ReadPixels(x, y, width, height, format, xtype, gl.PtrOffset(offset))
}

func (API) MapBuffer(target, access uint32, size int) []byte {
	ptr := gl.MapBuffer(target, access)
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

func (API) UnmapBuffer(target uint32) bool { return gl.UnmapBuffer(target) }
func (API) Viewport(x, y, w, h int32)      { gl.Viewport(x, y, w, h) }
func (API) GetError() uint32               { return gl.GetError() }
