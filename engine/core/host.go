package core

// Context is a GL context. "Current" is a per-thread association, so every
// call is made from the thread that drives the frame clock.
type Context interface {
	MakeCurrent() error
	IsCurrent() bool
	// Destroy releases the context. Calling it twice is a no-op.
	Destroy()
}

// ContextFactory creates owned contexts.
type ContextFactory interface {
	CreateContext(major, minor int, flags ContextFlags) (Context, error)
}

// FrameClock delivers one signal per host composition frame. Subscribers are
// called serially on the clock's thread.
type FrameClock interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Surface is the host element displaying the presented bitmap.
type Surface interface {
	// Invalidate asks the host to repaint at its next composition pass.
	Invalidate()
}

// Painter receives the presented bitmap during a host paint pass.
type Painter interface {
	DrawBitmap(b *Bitmap, t Transform)
}
