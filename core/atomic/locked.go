// File: core/atomic/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-guarded scalar backend for platforms or builds without native atomics.

package atomic

import (
	"sync"

	"github.com/momentics/hioload-core/api"
)

var (
	_ api.Scalar[uint8]  = (*Locked[uint8])(nil)
	_ api.Scalar[uint64] = (*Locked[uint64])(nil)
)

// Unsigned is the set of widths a Locked scalar can hold.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Locked is an unsigned scalar whose operations are serialized by one mutex.
// Results match the lock-free backend exactly. The zero value holds 0.
type Locked[T Unsigned] struct {
	mu sync.Mutex
	v  T
}

// Locked32 and Locked64 are the fallback counterparts of Uint32 and Uint64.
type (
	Locked32 = Locked[uint32]
	Locked64 = Locked[uint64]
)

// NewLocked returns a mutex-guarded scalar initialized to v.
func NewLocked[T Unsigned](v T) *Locked[T] {
	return &Locked[T]{v: v}
}

// Load returns the current value.
func (s *Locked[T]) Load() T {
	s.mu.Lock()
	v := s.v
	s.mu.Unlock()
	return v
}

// Store replaces the current value.
func (s *Locked[T]) Store(v T) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

// Add adds delta and returns the new value.
func (s *Locked[T]) Add(delta T) T {
	s.mu.Lock()
	s.v += delta
	v := s.v
	s.mu.Unlock()
	return v
}

// Subtract subtracts delta and returns the new value.
func (s *Locked[T]) Subtract(delta T) T {
	s.mu.Lock()
	s.v -= delta
	v := s.v
	s.mu.Unlock()
	return v
}

// CompareAndSwap stores newValue iff the scalar holds expected.
func (s *Locked[T]) CompareAndSwap(expected, newValue T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v != expected {
		return false
	}
	s.v = newValue
	return true
}
