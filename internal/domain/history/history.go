// Package history provides a fixed-capacity ring buffer used by every
// rolling history in the pipeline. Eviction happens synchronously on
// insert; the oldest entry is silently dropped once capacity is reached.
package history

// Ring is a bounded FIFO buffer. The zero value is not usable; construct
// with New. Not safe for concurrent use: each pipeline component owns
// exactly one history and is driven by a single caller.
type Ring[T any] struct {
	buf   []T
	head  int // index of the oldest entry
	count int
}

// New creates a ring buffer holding at most capacity entries.
// A non-positive capacity is treated as 1.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when full.
func (r *Ring[T]) Push(v T) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = v
		r.count++
		return
	}
	// Full: overwrite the oldest slot and advance the head.
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap returns the configured capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// At returns the i-th entry in insertion order, 0 being the oldest.
// Panics when i is out of range, matching slice semantics.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.count {
		panic("history: index out of range")
	}
	return r.buf[(r.head+i)%len(r.buf)]
}

// Last returns the most recent entry and true, or the zero value and
// false when the ring is empty.
func (r *Ring[T]) Last() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	return r.At(r.count - 1), true
}

// Tail returns up to n of the most recent entries in insertion order.
// The returned slice is freshly allocated; mutating it does not affect
// the ring.
func (r *Ring[T]) Tail(n int) []T {
	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	start := r.count - n
	for i := 0; i < n; i++ {
		out[i] = r.At(start + i)
	}
	return out
}

// All returns every stored entry in insertion order.
func (r *Ring[T]) All() []T {
	return r.Tail(r.count)
}

// ReverseEach calls fn from newest to oldest, stopping early when fn
// returns false. Used for cooldown scans over event history.
func (r *Ring[T]) ReverseEach(fn func(T) bool) {
	for i := r.count - 1; i >= 0; i-- {
		if !fn(r.At(i)) {
			return
		}
	}
}
