package core

import (
	"fmt"
	"time"
)

// ContextFlags are the creation flags requested for an owned GL context.
type ContextFlags uint32

const (
	FlagForwardCompatible ContextFlags = 1 << iota
	FlagDebug
	FlagCoreProfile
)

func (f ContextFlags) Has(flag ContextFlags) bool { return f&flag != 0 }

// Ownership tags who is responsible for destroying the GL context.
type Ownership int

const (
	// OwnershipOwned means the driver creates the context and destroys it on unload.
	OwnershipOwned Ownership = iota
	// OwnershipExternal means the context is supplied by the caller and never destroyed here.
	OwnershipExternal
)

func (o Ownership) String() string {
	switch o {
	case OwnershipOwned:
		return "owned"
	case OwnershipExternal:
		return "external"
	default:
		return fmt.Sprintf("Ownership(%d)", int(o))
	}
}

// Path selects how rendered pixels reach the host bitmap.
type Path int

const (
	// PathSoftware reads pixels back through pixel-pack buffers into CPU memory.
	PathSoftware Path = iota
	// PathHardware is the zero-copy interop path. It is not implemented.
	PathHardware
)

func (p Path) String() string {
	switch p {
	case PathSoftware:
		return "software"
	case PathHardware:
		return "hardware"
	default:
		return fmt.Sprintf("Path(%d)", int(p))
	}
}

// Supported reports whether this build can present through p.
func (p Path) Supported() bool { return p == PathSoftware }

// DefaultResizeDebounce is how long layout has to stay quiet before the
// render target is rebuilt at the new size.
const DefaultResizeDebounce = time.Second

// Config is supplied once to Driver.Start and never changes afterwards.
type Config struct {
	ContextMajor int
	ContextMinor int
	ContextFlags ContextFlags

	// Ownership decides whether Context must be set (external) or nil (owned).
	Ownership Ownership
	Context   Context

	Path Path

	// Number of pixel-pack buffers in the transfer ring.
	TransferBuffers int

	// Quiet period after the last resize before rebuilding. Zero rebuilds on
	// the next tick.
	ResizeDebounce time.Duration
}

// DefaultConfig asks for an owned 3.3 forward-compatible core context with
// triple-buffered readback.
func DefaultConfig() Config {
	return Config{
		ContextMajor:    3,
		ContextMinor:    3,
		ContextFlags:    FlagForwardCompatible | FlagCoreProfile,
		Ownership:       OwnershipOwned,
		Path:            PathSoftware,
		TransferBuffers: 3,
		ResizeDebounce:  DefaultResizeDebounce,
	}
}

// Validate rejects configurations the driver cannot honour. It runs before
// any context or GPU resource is touched.
func (c Config) Validate() error {
	if !c.Path.Supported() {
		return &UnsupportedPathError{Path: c.Path}
	}
	if c.TransferBuffers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBufferCount, c.TransferBuffers)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("glhost: negative resize debounce %s", c.ResizeDebounce)
	}
	switch c.Ownership {
	case OwnershipOwned:
		if c.Context != nil {
			return fmt.Errorf("%w: owned configuration carries an external context", ErrInvalidOwnership)
		}
		if c.ContextMajor < 1 || c.ContextMinor < 0 {
			return fmt.Errorf("glhost: invalid context version %d.%d", c.ContextMajor, c.ContextMinor)
		}
	case OwnershipExternal:
		if c.Context == nil {
			return fmt.Errorf("%w: external ownership without a context", ErrInvalidOwnership)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOwnership, c.Ownership)
	}
	return nil
}
