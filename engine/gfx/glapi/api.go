// Package glapi describes the slice of OpenGL the host core talks to.
//
// Keeping the calls behind an interface lets the render target and the
// presentation driver run against the real go-gl bindings in production and
// against an in-memory fake in tests, without cgo.
package glapi

// API is the set of GL entry points used by render targets and the driver.
// Object handles are plain GL names; 0 is never a valid object.
type API interface {
	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	IsFramebuffer(fb uint32) bool
	BindFramebuffer(target, fb uint32)
	CheckFramebufferStatus(target uint32) uint32

	GenRenderbuffer() uint32
	DeleteRenderbuffer(rb uint32)
	IsRenderbuffer(rb uint32) bool
	BindRenderbuffer(target, rb uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	IsBuffer(buf uint32) bool
	BindBuffer(target, buf uint32)
	BufferData(target uint32, size int, usage uint32)

	// ReadPixels reads into the buffer bound to PixelPackBuffer at the given
	// byte offset. It returns as soon as the transfer is queued.
	ReadPixels(x, y, width, height int32, format, xtype uint32, offset int)
	// MapBuffer maps size bytes of the buffer bound to target. It returns nil
	// when the driver refuses the mapping.
	MapBuffer(target, access uint32, size int) []byte
	UnmapBuffer(target uint32) bool

	Viewport(x, y, width, height int32)
	GetError() uint32
}
