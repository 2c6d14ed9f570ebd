package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHooksNilSafe(t *testing.T) {
	var h Hooks
	assert.NotPanics(t, func() {
		h.OnReady()
		h.OnRender(time.Millisecond)
		h.OnDispose()
	})

	var got time.Duration
	h.Render = func(d time.Duration) { got = d }
	h.OnRender(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, got)
}

func TestLayerStackOrder(t *testing.T) {
	var ls LayerStack
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		ls.Push(Hooks{Ready: func() { order = append(order, name) }})
	}
	assert.Equal(t, 3, ls.Len())

	ls.ForEach(func(l Layer) { l.OnReady() })
	assert.Equal(t, []string{"a", "b", "c"}, order)

	order = nil
	ls.ForEachReverse(func(l Layer) bool {
		l.OnReady()
		return len(order) == 2
	})
	assert.Equal(t, []string{"c", "b"}, order)

	_, ok := ls.Pop()
	assert.True(t, ok)
	ls.Pop()
	ls.Pop()
	_, ok = ls.Pop()
	assert.False(t, ok)
}
