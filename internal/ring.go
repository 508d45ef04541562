package internal

// Ring is a fixed-capacity FIFO that evicts its oldest element on overflow.
// Push and eviction are O(1).
type Ring[T any] struct {
	buf   []T
	start int
	size  int
}

// NewRing creates a ring holding at most capacity elements
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v. It returns the evicted element and true when the ring was full.
func (r *Ring[T]) Push(v T) (T, bool) {
	var evicted T
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return evicted, false
	}
	evicted = r.buf[r.start]
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
	return evicted, true
}

// Len returns the number of stored elements
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the ring capacity
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// At returns the i-th element, oldest first
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("ring: index out of range")
	}
	return r.buf[(r.start+i)%len(r.buf)]
}

// Items copies the contents, oldest first
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Last copies the newest n elements, oldest first
func (r *Ring[T]) Last(n int) []T {
	if n > r.size {
		n = r.size
	}
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	offset := r.size - n
	for i := range out {
		out[i] = r.buf[(r.start+offset+i)%len(r.buf)]
	}
	return out
}

// Reset empties the ring and refills it with items, keeping only the newest
// Cap() of them.
func (r *Ring[T]) Reset(items []T) {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start, r.size = 0, 0
	if len(items) > len(r.buf) {
		items = items[len(items)-len(r.buf):]
	}
	for _, v := range items {
		r.Push(v)
	}
}
