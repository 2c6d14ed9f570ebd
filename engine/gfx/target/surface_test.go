package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/gfx/glapi"
	"github.com/hubastard/glhost/engine/gfx/glapi/glfake"
)

func TestNewValidatesBeforeTouchingGL(t *testing.T) {
	tests := []struct {
		name          string
		w, h, buffers int
		is            error
	}{
		{"zero width", 0, 10, 3, core.ErrInvalidDimensions},
		{"negative height", 10, -1, 3, core.ErrInvalidDimensions},
		{"no buffers", 10, 10, 0, core.ErrInvalidBufferCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := glfake.New()
			s, err := New(gl, tt.w, tt.h, tt.buffers)
			require.ErrorIs(t, err, tt.is)
			assert.Nil(t, s)
			assert.Zero(t, gl.Calls)
		})
	}
}

func TestNewBuildsCompleteTarget(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 8, 6, 3)
	require.NoError(t, err)

	fb := s.Framebuffer()
	require.NotZero(t, fb)

	depth := gl.Attachment(fb, glapi.DepthAttachment)
	format, w, h, ok := gl.Renderbuffer(depth)
	require.True(t, ok)
	assert.Equal(t, uint32(glapi.DepthComponent24), format)
	assert.Equal(t, [2]int32{8, 6}, [2]int32{w, h})

	color := gl.Attachment(fb, glapi.ColorAttachment0)
	format, w, h, ok = gl.Renderbuffer(color)
	require.True(t, ok)
	assert.Equal(t, uint32(glapi.RGBA8), format)
	assert.Equal(t, [2]int32{8, 6}, [2]int32{w, h})

	bufs := s.TransferBuffers()
	require.Len(t, bufs, 3)
	for _, b := range bufs {
		assert.Equal(t, 8*6*4, gl.BufferSize(b))
		assert.Equal(t, uint32(glapi.StreamRead), gl.BufferUsage(b))
	}
	assert.Equal(t, 8*6*4, s.ByteSize())
	assert.False(t, s.HasRenderedFrame())
	assert.Zero(t, gl.BoundDraw(), "construction leaves the default framebuffer bound")
	assert.Empty(t, glapi.DrainErrors(gl))

	s.Bind()
	assert.Equal(t, fb, gl.BoundDraw())
	assert.Equal(t, [4]int32{0, 0, 8, 6}, gl.LastViewport())
}

func TestNewIncompleteFramebufferReleasesEverything(t *testing.T) {
	gl := glfake.New()
	gl.Status = glapi.IncompleteAttachment

	s, err := New(gl, 4, 4, 2)
	assert.Nil(t, s)
	var rterr *core.RenderTargetError
	require.ErrorAs(t, err, &rterr)
	assert.Equal(t, uint32(glapi.IncompleteAttachment), rterr.Status)
	assert.True(t, core.IsFatal(err))
	assert.Zero(t, gl.Live())
	assert.Zero(t, gl.BoundDraw())
}

func TestReleaseIsIdempotent(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, gl.Live())

	s.Release()
	assert.True(t, s.Released())
	assert.Zero(t, gl.Live())
	calls := gl.Calls

	s.Release()
	assert.Equal(t, calls, gl.Calls)
	assert.Nil(t, s.TransferBuffers())
	require.ErrorIs(t, s.Transfer(make([]byte, 16)), ErrReleased)
}

func TestTransferHasOneFrameLatency(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 2, 2, 3)
	require.NoError(t, err)
	bufs := s.TransferBuffers()
	dst := make([]byte, s.ByteSize())

	// first cycle has nothing in flight and returns what it just read
	require.NoError(t, s.Transfer(dst))
	assert.True(t, s.HasRenderedFrame())
	assert.Equal(t, []uint32{bufs[0]}, gl.Reads)
	assert.Equal(t, []uint32{bufs[0]}, gl.Maps)
	assert.Equal(t, byte(1), dst[0])

	for cycle := 2; cycle <= 7; cycle++ {
		require.NoError(t, s.Transfer(dst))
		issued := gl.Reads[len(gl.Reads)-1]
		mapped := gl.Maps[len(gl.Maps)-1]
		assert.Equal(t, bufs[(cycle-1)%3], issued)
		assert.Equal(t, gl.Reads[len(gl.Reads)-2], mapped, "cycle %d maps the previous issue", cycle)
		for _, b := range dst {
			require.Equal(t, byte(cycle-1), b)
		}
	}
	assert.Empty(t, glapi.DrainErrors(gl))
}

func TestTransferSingleBufferIsSynchronous(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 3, 1, 1)
	require.NoError(t, err)
	dst := make([]byte, s.ByteSize())

	for cycle := 1; cycle <= 3; cycle++ {
		require.NoError(t, s.Transfer(dst))
		assert.Equal(t, byte(cycle), dst[len(dst)-1])
	}
}

func TestTransferDestinationTooSmall(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 2, 2, 2)
	require.NoError(t, err)
	before := s.TransferBuffers()

	require.ErrorIs(t, s.Transfer(make([]byte, 15)), core.ErrBitmapTooSmall)
	assert.Empty(t, gl.Reads)
	assert.Equal(t, before, s.TransferBuffers())
}

func TestTransferMapFailureIsTransient(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 2, 2, 2)
	require.NoError(t, err)
	bufs := s.TransferBuffers()
	dst := make([]byte, s.ByteSize())

	gl.RefuseMap = true
	err = s.Transfer(dst)
	var terr *core.TransientGLError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, uint32(glapi.InvalidOperation), terr.Code)
	assert.False(t, core.IsFatal(err))
	assert.False(t, s.HasRenderedFrame())
	assert.Equal(t, []uint32{bufs[1], bufs[0]}, s.TransferBuffers(), "the ring still rotates")

	gl.RefuseMap = false
	require.NoError(t, s.Transfer(dst))
	assert.Equal(t, byte(2), dst[0])
}

func TestTransferMapFailureReportsEveryFlag(t *testing.T) {
	gl := glfake.New()
	s, err := New(gl, 2, 2, 2)
	require.NoError(t, err)

	gl.InjectError(glapi.OutOfMemory)
	gl.RefuseMap = true
	err = s.Transfer(make([]byte, s.ByteSize()))
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	var codes []uint32
	for _, e := range joined.Unwrap() {
		var terr *core.TransientGLError
		require.ErrorAs(t, e, &terr)
		assert.Equal(t, "MapBuffer", terr.Op)
		codes = append(codes, terr.Code)
	}
	assert.Equal(t, []uint32{glapi.OutOfMemory, glapi.InvalidOperation}, codes)
	assert.Empty(t, glapi.DrainErrors(gl), "no flag is left behind for the next frame")
}
