package core

import "time"

// Layer receives the driver's client-facing events.
type Layer interface {
	// OnReady fires once, after the first render target has been built.
	OnReady()
	// OnRender fires once per tick with the framebuffer bound for drawing.
	OnRender(elapsed time.Duration)
	// OnDispose fires when the host unloads the driver.
	OnDispose()
}

// Hooks adapts plain functions to Layer. Nil fields are skipped.
type Hooks struct {
	Ready   func()
	Render  func(elapsed time.Duration)
	Dispose func()
}

func (h Hooks) OnReady() {
	if h.Ready != nil {
		h.Ready()
	}
}

func (h Hooks) OnRender(elapsed time.Duration) {
	if h.Render != nil {
		h.Render(elapsed)
	}
}

func (h Hooks) OnDispose() {
	if h.Dispose != nil {
		h.Dispose()
	}
}

type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }
func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// ForEach visits layers bottom to top.
func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// ForEachReverse visits layers top to bottom until f returns true.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if stop := f(ls.list[i]); stop {
			break
		}
	}
}
