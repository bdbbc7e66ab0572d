package physics

import "gonum.org/v1/gonum/spatial/r3"

// Trail is a fixed-capacity ring of past positions, oldest first.
// When full, Push evicts the oldest entry before storing the new one, so a
// trail never holds more than Cap entries.
type Trail struct {
	buf   []r3.Vec
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]r3.Vec, capacity)}
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

// Push appends p, evicting the oldest position if the trail is full.
func (t *Trail) Push(p r3.Vec) {
	if t.n == len(t.buf) {
		t.buf[t.start] = p
		t.start = (t.start + 1) % len(t.buf)
		return
	}
	t.buf[(t.start+t.n)%len(t.buf)] = p
	t.n++
}

// At returns the i-th oldest position.
func (t *Trail) At(i int) r3.Vec {
	if i < 0 || i >= t.n {
		panic("physics: trail index out of range")
	}
	return t.buf[(t.start+i)%len(t.buf)]
}

// Last returns the newest position and false if the trail is empty.
func (t *Trail) Last() (r3.Vec, bool) {
	if t.n == 0 {
		return r3.Vec{}, false
	}
	return t.At(t.n - 1), true
}

// Points copies the trail into a new slice, oldest first.
func (t *Trail) Points() []r3.Vec {
	out := make([]r3.Vec, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}
