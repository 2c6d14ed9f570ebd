package platform

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/log"
)

var logger = log.New("platform")

var initOnce sync.Once
var initErr error

// GLFW creates owned contexts backed by hidden 1x1 GLFW windows; nothing
// is ever presented to them, rendering goes to off-screen framebuffers.
// Must be used from the main thread.
type GLFW struct{}

var _ core.ContextFactory = GLFW{}

func (GLFW) CreateContext(major, minor int, flags core.ContextFlags) (core.Context, error) {
	initOnce.Do(func() { initErr = glfw.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("glfw init: %w", initErr)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	// Profiles only exist from 3.2 on; older versions must ask for "any".
	if flags.Has(core.FlagCoreProfile) && (major > 3 || major == 3 && minor >= 2) {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	if flags.Has(core.FlagForwardCompatible) && major >= 3 {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if flags.Has(core.FlagDebug) {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(1, 1, "glhost", nil, nil)
	if err != nil {
		return nil, err
	}
	logger.Infof("created GL %d.%d context (flags %#x)", major, minor, uint32(flags))
	return &Context{w: win}, nil
}

// Context is a GLFW-owned GL context.
type Context struct {
	w *glfw.Window
}

var _ core.Context = (*Context)(nil)

func (c *Context) MakeCurrent() error {
	if c.w == nil {
		return fmt.Errorf("platform: context destroyed")
	}
	c.w.MakeContextCurrent()
	return nil
}

func (c *Context) IsCurrent() bool {
	return c.w != nil && glfw.GetCurrentContext() == c.w
}

func (c *Context) Destroy() {
	if c.w == nil {
		return
	}
	if c.IsCurrent() {
		glfw.DetachCurrentContext()
	}
	c.w.Destroy()
	c.w = nil
}

// Terminate shuts GLFW down once every context has been destroyed.
func Terminate() {
	if initErr == nil {
		glfw.Terminate()
	}
}
