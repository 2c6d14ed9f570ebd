package main

import (
	"runtime"
	"time"

	"github.com/hubastard/glhost/engine/colors"
	"github.com/hubastard/glhost/engine/core"
	glbackend "github.com/hubastard/glhost/engine/gfx/gl"
	"github.com/hubastard/glhost/engine/profiler"
)

// triangleLayer is the client drawing: a spinning triangle rendered into
// the bound off-screen framebuffer.
type triangleLayer struct {
	major, minor int
	clear        colors.Color
	tri          *glbackend.Triangle
}

var _ core.Layer = (*triangleLayer)(nil)

func (l *triangleLayer) OnReady() {
	tri, err := glbackend.NewTriangle(l.major, l.minor)
	if err != nil {
		logger.Errorf("triangle: %v", err)
		return
	}
	l.tri = tri
}

func (l *triangleLayer) OnRender(elapsed time.Duration) {
	end := profiler.Start("triangleLayer.OnRender")
	defer end()

	if l.tri == nil {
		return
	}
	l.tri.Draw(elapsed, l.clear)
}

func (l *triangleLayer) OnDispose() {
	if l.tri != nil {
		l.tri.Release()
		l.tri = nil
	}
}

// frameLogLayer logs frame timing and memory every n frames.
type frameLogLayer struct {
	every int
	frame int
	total time.Duration
}

func newFrameLogLayer(every int) *frameLogLayer {
	if every <= 0 {
		every = 60
	}
	return &frameLogLayer{every: every}
}

func (l *frameLogLayer) OnReady() { logger.Info("presenter ready") }

func (l *frameLogLayer) OnRender(elapsed time.Duration) {
	l.frame++
	l.total += elapsed
	if l.frame%l.every != 0 {
		return
	}
	avg := l.total / time.Duration(l.every)
	l.total = 0

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}
	logger.Infof("frame %d: %s avg (%.1f FPS), heap %.2f MB, %d goroutines",
		l.frame, avg, fps, float64(m.Alloc)/(1<<20), runtime.NumGoroutine())
}

func (l *frameLogLayer) OnDispose() {}
