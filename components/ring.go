package components

// Ring is a fixed-capacity FIFO that evicts its oldest entry on overflow.
type Ring[T any] struct {
	items []T
	start int
	count int
}

// NewRing creates a ring holding at most capacity entries (minimum 1).
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when full.
func (r *Ring[T]) Push(v T) {
	if r.count < len(r.items) {
		r.items[(r.start+r.count)%len(r.items)] = v
		r.count++
		return
	}
	r.items[r.start] = v
	r.start = (r.start + 1) % len(r.items)
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int { return len(r.items) }

// At returns the i-th entry counting back from the newest (0 = newest).
func (r *Ring[T]) At(back int) (T, bool) {
	var zero T
	if back < 0 || back >= r.count {
		return zero, false
	}
	idx := (r.start + r.count - 1 - back) % len(r.items)
	return r.items[idx], true
}

// Ptr is At returning a pointer into the ring, for in-place edits.
func (r *Ring[T]) Ptr(back int) *T {
	if back < 0 || back >= r.count {
		return nil
	}
	idx := (r.start + r.count - 1 - back) % len(r.items)
	return &r.items[idx]
}

// Slice returns the entries oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.items[(r.start+i)%len(r.items)]
	}
	return out
}

// Clear drops every entry.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.start, r.count = 0, 0
}
