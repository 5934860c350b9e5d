package audio

import "sync/atomic"

// Ring is a fixed-capacity single-producer single-consumer queue of audio
// samples shared between the decode goroutine and either the real-time
// render path or the analyzer.
//
// Design:
// - Exactly one goroutine calls Write, exactly one calls TryRead
// - head and tail are monotonically increasing sample counters; the slot
//   for counter n is n % capacity
// - No mutex, no condition variable: the render path is never allowed to
//   block, so all coordination is through the two atomic counters
//
// Absence of data is a normal condition: TryRead reports it through its
// second return value, never by waiting.
type Ring struct {
	buf  []float32
	head atomic.Uint64 // samples consumed
	tail atomic.Uint64 // samples produced
}

// NewRing creates a ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Write appends as many samples as fit and returns the count accepted.
// Producer side only. A zero return means the ring is full; the caller
// decides whether to retry (playback feed) or drop (analysis feed).
func (r *Ring) Write(samples []float32) int {
	capacity := uint64(len(r.buf))
	head := r.head.Load()
	tail := r.tail.Load()

	free := capacity - (tail - head)
	n := uint64(len(samples))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	for i := uint64(0); i < n; i++ {
		r.buf[(tail+i)%capacity] = samples[i]
	}
	r.tail.Store(tail + n)
	return int(n)
}

// TryRead pops the oldest sample. Consumer side only. Returns false
// immediately when no sample is buffered.
func (r *Ring) TryRead() (float32, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return 0, false
	}
	v := r.buf[head%uint64(len(r.buf))]
	r.head.Store(head + 1)
	return v, true
}

// Len returns the number of buffered samples. Advisory only: both ends may
// move concurrently.
func (r *Ring) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}
