package core

import (
	"context"
	"runtime"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Ticker is a FrameClock driven by a fixed interval. Run owns the driving
// thread; subscribers fire on it one after another, in subscription order.
type Ticker struct {
	clock    clock.WithTicker
	interval time.Duration

	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func()
}

var _ FrameClock = (*Ticker)(nil)

// NewTicker returns a frame clock firing fps times per second. A nil clock
// uses the real clock.
func NewTicker(c clock.WithTicker, fps int) *Ticker {
	if c == nil {
		c = clock.RealClock{}
	}
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{clock: c, interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between two frames.
func (t *Ticker) Interval() time.Duration { return t.interval }

func (t *Ticker) Subscribe(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (t *Ticker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Fire dispatches one frame synchronously on the calling thread.
func (t *Ticker) Fire() {
	t.mu.Lock()
	subs := make([]subscriber, len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

// Run fires frames until ctx is done or, when frames > 0, that many frames
// have been dispatched. GL contexts are bound to OS threads, so the calling
// goroutine is locked to its thread for the duration.
func (t *Ticker) Run(ctx context.Context, frames int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tk := t.clock.NewTicker(t.interval)
	defer tk.Stop()

	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C():
			t.Fire()
		}
	}
	return nil
}
