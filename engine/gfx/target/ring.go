package target

// ring is a fixed set of transfer buffers addressed through a moving head.
// Rotating left advances the head; the handles themselves never move.
type ring struct {
	bufs []uint32
	head int
}

func newRing(bufs []uint32) *ring {
	return &ring{bufs: bufs}
}

func (r *ring) Len() int { return len(r.bufs) }

// At returns the i-th buffer in logical order, i in [0, Len).
func (r *ring) At(i int) uint32 {
	return r.bufs[(r.head+i)%len(r.bufs)]
}

func (r *ring) Front() uint32 { return r.At(0) }

func (r *ring) Back() uint32 { return r.At(len(r.bufs) - 1) }

// Rotate moves the front buffer to the back.
func (r *ring) Rotate() {
	r.head = (r.head + 1) % len(r.bufs)
}

// Ordered returns a copy of the buffers in logical order.
func (r *ring) Ordered() []uint32 {
	out := make([]uint32, len(r.bufs))
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}
