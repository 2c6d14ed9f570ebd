package core

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted     = errors.New("glhost: driver already started")
	ErrNotStarted         = errors.New("glhost: driver not started")
	ErrDisposed           = errors.New("glhost: driver disposed")
	ErrInvalidDimensions  = errors.New("glhost: invalid dimensions")
	ErrInvalidBufferCount = errors.New("glhost: transfer buffer count must be at least 1")
	ErrInvalidOwnership   = errors.New("glhost: invalid context ownership")
	ErrBitmapTooSmall     = errors.New("glhost: destination bitmap too small")
)

// ContextCreationError is returned when no GL context with the requested
// version and flags can be obtained. It is fatal.
type ContextCreationError struct {
	Major, Minor int
	Err          error
}

func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("glhost: could not create GL %d.%d context: %v", e.Major, e.Minor, e.Err)
}

func (e *ContextCreationError) Unwrap() error { return e.Err }

// RenderTargetError is returned when an off-screen framebuffer fails its
// completeness check. It is fatal for the target being built.
type RenderTargetError struct {
	Status        uint32
	Width, Height int
}

func (e *RenderTargetError) Error() string {
	return fmt.Sprintf("glhost: framebuffer %dx%d incomplete: status 0x%X", e.Width, e.Height, e.Status)
}

// UnsupportedPathError is returned at configuration time for presentation
// paths this build does not implement.
type UnsupportedPathError struct {
	Path Path
}

func (e *UnsupportedPathError) Error() string {
	return fmt.Sprintf("glhost: %s presentation path not supported", e.Path)
}

// TransientGLError is a per-frame GL failure. It is reported and never
// stops subsequent ticks.
type TransientGLError struct {
	Op   string
	Code uint32
	Name string
}

func (e *TransientGLError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("glhost: %s: GL error 0x%04X", e.Op, e.Code)
	}
	return fmt.Sprintf("glhost: %s: %s (0x%04X)", e.Op, e.Name, e.Code)
}

// IsFatal reports whether err prevents the driver from being used.
func IsFatal(err error) bool {
	var (
		cerr *ContextCreationError
		terr *RenderTargetError
		perr *UnsupportedPathError
	)
	return errors.As(err, &cerr) || errors.As(err, &terr) || errors.As(err, &perr)
}
