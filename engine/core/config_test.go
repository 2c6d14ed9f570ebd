package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopContext struct{}

func (nopContext) MakeCurrent() error { return nil }
func (nopContext) IsCurrent() bool    { return true }
func (nopContext) Destroy()           {}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.ContextMajor)
	assert.Equal(t, 3, cfg.ContextMinor)
	assert.True(t, cfg.ContextFlags.Has(FlagForwardCompatible))
	assert.True(t, cfg.ContextFlags.Has(FlagCoreProfile))
	assert.False(t, cfg.ContextFlags.Has(FlagDebug))
	assert.Equal(t, time.Second, cfg.ResizeDebounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		is     error
	}{
		{"zero buffers", func(c *Config) { c.TransferBuffers = 0 }, ErrInvalidBufferCount},
		{"owned with context", func(c *Config) { c.Context = nopContext{} }, ErrInvalidOwnership},
		{"external without context", func(c *Config) { c.Ownership = OwnershipExternal }, ErrInvalidOwnership},
		{"unknown ownership", func(c *Config) { c.Ownership = Ownership(7) }, ErrInvalidOwnership},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.is)
		})
	}

	cfg := DefaultConfig()
	cfg.ResizeDebounce = -time.Millisecond
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ContextMajor = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Ownership, cfg.Context = OwnershipExternal, nopContext{}
	cfg.ContextMajor = 0
	require.NoError(t, cfg.Validate(), "external contexts carry their own version")
}

func TestValidateRejectsHardwarePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = PathHardware
	cfg.TransferBuffers = 0

	err := cfg.Validate()
	var perr *UnsupportedPathError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PathHardware, perr.Path)
	assert.True(t, IsFatal(err))
	assert.False(t, PathHardware.Supported())
	assert.Equal(t, "hardware", PathHardware.String())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(&ContextCreationError{Major: 4, Minor: 6, Err: ErrNotStarted}))
	assert.True(t, IsFatal(&RenderTargetError{Status: 0x8CD6, Width: 1, Height: 1}))
	assert.False(t, IsFatal(&TransientGLError{Op: "tick", Code: 0x0502}))
	assert.False(t, IsFatal(ErrBitmapTooSmall))

	cerr := &ContextCreationError{Major: 3, Minor: 3, Err: ErrDisposed}
	assert.ErrorIs(t, cerr, ErrDisposed)
	assert.Contains(t, cerr.Error(), "3.3")
}
