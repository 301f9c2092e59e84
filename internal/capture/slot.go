package capture

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/aimsight/pkg/metrics"
)

// Slot is a capacity-1 latest-wins frame handoff between the producer and
// the single pipeline consumer. Publishing over an unconsumed frame drops
// the old one and counts it; Next blocks until a frame arrives or the
// context is done.
type Slot struct {
	mu     sync.Mutex
	frame  *Frame
	notify chan struct{}
	drops  atomic.Uint64
}

// NewSlot creates an empty frame slot.
func NewSlot() *Slot {
	return &Slot{notify: make(chan struct{}, 1)}
}

// Publish stores f, overwriting any unconsumed frame. Non-blocking.
func (s *Slot) Publish(f *Frame) {
	s.mu.Lock()
	if s.frame != nil {
		s.drops.Add(1)
		metrics.RecordFrameDropped()
	}
	s.frame = f
	s.mu.Unlock()

	// Wake the consumer if it is waiting; a pending signal is enough.
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Next returns the most recent unconsumed frame, blocking until one is
// published or ctx is done.
func (s *Slot) Next(ctx context.Context) (*Frame, error) {
	for {
		s.mu.Lock()
		f := s.frame
		s.frame = nil
		s.mu.Unlock()

		if f != nil {
			return f, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.notify:
		}
	}
}

// Drops returns the number of frames overwritten before consumption.
func (s *Slot) Drops() uint64 {
	return s.drops.Load()
}
