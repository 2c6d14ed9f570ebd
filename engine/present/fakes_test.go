package present

import (
	"errors"
	"time"

	clocktesting "k8s.io/utils/clock/testing"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/gfx/glapi"
	"github.com/hubastard/glhost/engine/gfx/glapi/glfake"
	"github.com/hubastard/glhost/engine/host"
)

type fakeContext struct {
	current   bool
	makes     int
	destroyed int
	failMake  bool
}

func (c *fakeContext) MakeCurrent() error {
	c.makes++
	if c.failMake {
		return errors.New("make current refused")
	}
	c.current = true
	return nil
}

func (c *fakeContext) IsCurrent() bool { return c.current }
func (c *fakeContext) Destroy()        { c.destroyed++; c.current = false }

type fakeFactory struct {
	err     error
	created []*fakeContext
	major   int
	minor   int
	flags   core.ContextFlags
}

func (f *fakeFactory) CreateContext(major, minor int, flags core.ContextFlags) (core.Context, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.major, f.minor, f.flags = major, minor, flags
	c := &fakeContext{}
	f.created = append(f.created, c)
	return c, nil
}

// rig wires a driver to fake GL, a manual frame clock and an image host.
type rig struct {
	gl      *glfake.GL
	clock   *clocktesting.FakeClock
	frames  *core.Ticker
	img     *host.ImageHost
	factory *fakeFactory
	errs    []error
	drv     *Driver
}

func newRig(w, h int) *rig {
	r := &rig{
		gl:      glfake.New(),
		clock:   clocktesting.NewFakeClock(time.Unix(1000, 0)),
		img:     host.NewImageHost(w, h),
		factory: &fakeFactory{},
	}
	r.frames = core.NewTicker(r.clock, 60)
	r.drv = New(Host{
		Contexts: r.factory,
		Loader:   func() (glapi.API, error) { return r.gl, nil },
		Frames:   r.frames,
		Surface:  r.img,
		Clock:    r.clock,
		Errors:   func(err error) { r.errs = append(r.errs, err) },
	})
	return r
}

// tick advances the clock by d, fires one frame and composes the host.
func (r *rig) tick(d time.Duration) {
	r.clock.Step(d)
	r.frames.Fire()
	r.img.Compose(r.drv)
}

// recorder is a layer that logs every event it receives.
type recorder struct {
	name    string
	events  *[]string
	elapsed []time.Duration
	readyFB uint32
	drv     *Driver
}

func (l *recorder) OnReady() {
	*l.events = append(*l.events, l.name+".ready")
	if l.drv != nil {
		l.readyFB, _ = l.drv.Framebuffer()
	}
}

func (l *recorder) OnRender(elapsed time.Duration) {
	*l.events = append(*l.events, l.name+".render")
	l.elapsed = append(l.elapsed, elapsed)
}

func (l *recorder) OnDispose() {
	*l.events = append(*l.events, l.name+".dispose")
}
