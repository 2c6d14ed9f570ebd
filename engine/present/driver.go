// Package present drives an off-screen GL render target from a host's
// composition clock and hands the read-back pixels to the host as a bitmap.
package present

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/hubastard/glhost/engine/core"
	"github.com/hubastard/glhost/engine/gfx/glapi"
	"github.com/hubastard/glhost/engine/gfx/target"
	"github.com/hubastard/glhost/engine/log"
	"github.com/hubastard/glhost/engine/profiler"
)

var logger = log.New("present")

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Host bundles the collaborators a Driver needs from its environment.
type Host struct {
	// Contexts creates owned contexts. Unused for external ownership.
	Contexts core.ContextFactory
	// Loader resolves GL entry points once a context is current.
	Loader func() (glapi.API, error)
	// Frames signals composition ticks. The driver subscribes while active.
	Frames core.FrameClock
	// Surface is invalidated after every presented frame.
	Surface core.Surface
	// Clock measures tick deltas and the resize debounce. Defaults to the
	// real, monotonic clock.
	Clock clock.PassiveClock
	// Errors, if set, receives every transient error as it is reported.
	Errors func(error)
}

// Stats are running counters since Load.
type Stats struct {
	Ticks           int
	Skipped         int
	Rebuilds        int
	Transfers       int
	TransientErrors int
	LastElapsed     time.Duration
}

// Driver runs the presentation state machine for one host element.
// Lifecycle calls and ticks must come from the thread that owns the GL
// context; Resize may be called from anywhere.
type Driver struct {
	host  Host
	clock clock.PassiveClock

	cfg     core.Config
	started bool
	state   State

	ctx   core.Context
	owned bool
	api   glapi.API

	target *target.Surface
	bitmap *core.Bitmap

	// guards layout, pending resize and transform
	mu            sync.Mutex
	width, height int
	resizePending bool
	resizeSince   time.Time
	transform     core.Transform

	lastFrame   time.Time
	ready       bool
	layers      core.LayerStack
	unsubscribe func()

	stats Stats
	err   error
}

// New returns an uninitialized driver.
func New(h Host) *Driver {
	c := h.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	return &Driver{host: h, clock: c}
}

// Start records the configuration. It must precede Load and may only be
// called once. Unsupported configurations fail here, before any context
// or GPU resource exists.
func (d *Driver) Start(cfg core.Config) error {
	if d.started {
		return core.ErrAlreadyStarted
	}
	if err := cfg.Validate(); err != nil {
		logger.Errorf("rejecting configuration: %v", err)
		return err
	}
	d.cfg = cfg
	d.started = true
	logger.Infof("started: GL %d.%d, %s context, %s path, %d transfer buffers",
		cfg.ContextMajor, cfg.ContextMinor, cfg.Ownership, cfg.Path, cfg.TransferBuffers)
	return nil
}

// Push registers a layer for ready/render/dispose events.
func (d *Driver) Push(l core.Layer) { d.layers.Push(l) }

func (d *Driver) State() State        { return d.state }
func (d *Driver) Config() core.Config { return d.cfg }
func (d *Driver) Stats() Stats        { return d.stats }

// Err returns the most recent reported error, or nil.
func (d *Driver) Err() error { return d.err }

// Bitmap returns the bitmap presented to the host, nil before the first
// target is built.
func (d *Driver) Bitmap() *core.Bitmap { return d.bitmap }

// Transform returns the current presentation transform.
func (d *Driver) Transform() core.Transform {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transform
}

// Framebuffer returns the framebuffer clients draw into. It is only valid
// once the ready event has fired.
func (d *Driver) Framebuffer() (uint32, bool) {
	if !d.ready || d.target == nil {
		return 0, false
	}
	return d.target.Framebuffer(), true
}

// Load brings the driver to the active state: it acquires or adopts the
// context, builds the first render target at the given layout size and
// subscribes to the frame clock. Fatal failures dispose the driver and are
// returned.
func (d *Driver) Load(width, height int) error {
	switch {
	case !d.started:
		return core.ErrNotStarted
	case d.state == StateDisposed:
		return core.ErrDisposed
	case d.state == StateActive:
		return nil
	}

	if err := d.acquireContext(); err != nil {
		logger.Errorf("load failed: %v", err)
		d.Unload()
		return err
	}

	width, height = clampSize(width, height)
	now := d.clock.Now()
	d.mu.Lock()
	d.width, d.height = width, height
	d.transform = core.NewTransform(width, height)
	// a Resize before Load is superseded by the load size
	d.resizePending = width == 0 || height == 0
	d.resizeSince = now
	d.mu.Unlock()

	if width > 0 && height > 0 {
		if err := d.build(width, height); err != nil {
			logger.Errorf("load failed: %v", err)
			d.Unload()
			return err
		}
	}

	d.state = StateActive
	d.lastFrame = now
	if d.host.Frames != nil {
		d.unsubscribe = d.host.Frames.Subscribe(d.Tick)
	}
	logger.Infof("loaded at %dx%d", width, height)
	if d.target != nil {
		d.fireReady()
	}
	return nil
}

func (d *Driver) acquireContext() error {
	cfg := d.cfg
	if cfg.Ownership == core.OwnershipExternal {
		d.ctx, d.owned = cfg.Context, false
	} else {
		if d.host.Contexts == nil {
			return contextError(cfg, errors.New("no context factory"))
		}
		ctx, err := d.host.Contexts.CreateContext(cfg.ContextMajor, cfg.ContextMinor, cfg.ContextFlags)
		if err != nil {
			return contextError(cfg, err)
		}
		d.ctx, d.owned = ctx, true
	}

	if err := d.ctx.MakeCurrent(); err != nil {
		return contextError(cfg, err)
	}
	if d.host.Loader == nil {
		return contextError(cfg, errors.New("no GL loader"))
	}
	api, err := d.host.Loader()
	if err != nil {
		return contextError(cfg, err)
	}
	d.api = api
	return nil
}

func contextError(cfg core.Config, err error) error {
	var cerr *core.ContextCreationError
	if errors.As(err, &cerr) {
		return err
	}
	return &core.ContextCreationError{Major: cfg.ContextMajor, Minor: cfg.ContextMinor, Err: err}
}

func (d *Driver) build(width, height int) error {
	s, err := target.New(d.api, width, height, d.cfg.TransferBuffers)
	if err != nil {
		return err
	}
	bm, err := core.NewBitmap(width, height)
	if err != nil {
		s.Release()
		return err
	}
	d.target, d.bitmap = s, bm
	return nil
}

func (d *Driver) fireReady() {
	if d.ready {
		return
	}
	d.ready = true
	d.layers.ForEach(func(l core.Layer) { l.OnReady() })
}

// Resize records a new layout size. The render target is rebuilt on the
// first tick after the size has stayed unchanged for the debounce period.
func (d *Driver) Resize(width, height int) {
	width, height = clampSize(width, height)
	d.mu.Lock()
	defer d.mu.Unlock()
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	d.resizePending = true
	d.resizeSince = d.clock.Now()
	d.transform.Resize(width, height)
}

// Paint hands the current bitmap and transform to the host painter.
func (d *Driver) Paint(p core.Painter) {
	if d.bitmap == nil {
		return
	}
	p.DrawBitmap(d.bitmap, d.Transform())
}

// Tick renders and presents one frame. It is subscribed to the frame clock
// while active and does nothing otherwise. Per-frame GL errors are
// reported, never returned.
func (d *Driver) Tick() {
	if d.state != StateActive || d.ctx == nil {
		return
	}
	defer profiler.Start("present.Tick")()

	if !d.ctx.IsCurrent() {
		if err := d.ctx.MakeCurrent(); err != nil {
			d.report(fmt.Errorf("glhost: make current: %w", err))
			return
		}
	}

	now := d.clock.Now()
	d.mu.Lock()
	pending, since := d.resizePending, d.resizeSince
	width, height := d.width, d.height
	d.mu.Unlock()

	if pending {
		if now.Sub(since) < d.cfg.ResizeDebounce {
			d.stats.Skipped++
			return
		}
		d.rebuild(width, height)
		d.mu.Lock()
		if d.resizeSince.Equal(since) {
			d.resizePending = false
		}
		d.mu.Unlock()
	}

	if d.target == nil {
		return
	}

	d.target.Bind()

	elapsed := now.Sub(d.lastFrame)
	d.layers.ForEach(func(l core.Layer) { l.OnRender(elapsed) })
	d.drain("render")

	if err := d.target.Transfer(d.bitmap.Pix); err != nil {
		d.report(err)
	} else {
		d.stats.Transfers++
	}
	d.drain("transfer")

	if d.host.Surface != nil {
		d.host.Surface.Invalidate()
	}

	d.lastFrame = now
	d.stats.Ticks++
	d.stats.LastElapsed = elapsed
}

func (d *Driver) rebuild(width, height int) {
	defer profiler.Start("present.Rebuild")()

	if d.target != nil {
		d.target.Release()
		d.target, d.bitmap = nil, nil
	}
	if width == 0 || height == 0 {
		logger.Debugf("layout collapsed to %dx%d, holding without a target", width, height)
		return
	}
	if err := d.build(width, height); err != nil {
		logger.Errorf("rebuild at %dx%d failed: %v", width, height, err)
		d.err = err
		if d.host.Errors != nil {
			d.host.Errors(err)
		}
		return
	}
	d.stats.Rebuilds++
	logger.Infof("render target rebuilt at %dx%d", width, height)
	d.fireReady()
}

// drain reports every pending GL error flag as raised by op.
func (d *Driver) drain(op string) {
	for _, code := range glapi.DrainErrors(d.api) {
		d.report(&core.TransientGLError{Op: op, Code: code, Name: glapi.ErrorName(code)})
	}
}

func (d *Driver) report(err error) {
	d.err = err
	d.stats.TransientErrors++
	logger.Warningf("frame %d: %v", d.stats.Ticks+1, err)
	if d.host.Errors != nil {
		d.host.Errors(err)
	}
}

// Unload releases the render target and, when owned, the context. It is
// valid in any state and idempotent.
func (d *Driver) Unload() {
	if d.state == StateDisposed {
		return
	}
	d.state = StateDisposed

	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	if d.ctx != nil && !d.ctx.IsCurrent() {
		if err := d.ctx.MakeCurrent(); err != nil {
			logger.Warningf("unload: make current: %v", err)
		}
	}
	if d.ready {
		d.layers.ForEachReverse(func(l core.Layer) bool {
			l.OnDispose()
			return false
		})
	}
	if d.target != nil {
		d.target.Release()
		d.target = nil
	}
	d.bitmap = nil
	if d.ctx != nil {
		if d.owned {
			d.ctx.Destroy()
		}
		d.ctx = nil
	}
	d.api = nil
	logger.Info("unloaded")
}

func clampSize(width, height int) (int, int) {
	return max(width, 0), max(height, 0)
}
