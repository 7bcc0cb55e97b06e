// Package pending holds a single latest-wins request.
//
// Writers overwrite the value and bump a sequence counter. A reader that
// was busy sees only the newest value, so a burst of writes collapses into
// one read.
package pending

import (
	"context"
	"sync"
)

// Slot is a one-element mailbox where newer values replace older ones.
type Slot[T any] struct {
	mu    sync.Mutex
	seq   uint64
	taken uint64
	val   T
	ready chan struct{}
}

// New creates an empty Slot.
func New[T any]() *Slot[T] {
	return &Slot[T]{ready: make(chan struct{}, 1)}
}

// Publish stores v and returns its sequence number.
func (s *Slot[T]) Publish(v T) uint64 {
	s.mu.Lock()
	s.val = v
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
	return seq
}

// TryTake returns the newest value if it has not been taken yet.
func (s *Slot[T]) TryTake() (v T, seq uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == s.taken {
		return v, s.seq, false
	}
	s.taken = s.seq
	return s.val, s.seq, true
}

// Take blocks until a value newer than the last taken one is published.
func (s *Slot[T]) Take(ctx context.Context) (v T, seq uint64, err error) {
	for {
		if v, seq, ok := s.TryTake(); ok {
			return v, seq, nil
		}
		select {
		case <-ctx.Done():
			return v, 0, ctx.Err()
		case <-s.ready:
		}
	}
}

// Seq returns the sequence number of the newest published value.
func (s *Slot[T]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}
