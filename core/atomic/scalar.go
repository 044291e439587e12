// File: core/atomic/scalar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free scalar backend on top of sync/atomic.

package atomic

import (
	"sync/atomic"

	"github.com/momentics/hioload-core/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Scalar[uint32] = (*Uint32)(nil)
	_ api.Scalar[uint64] = (*Uint64)(nil)
)

// Uint32 is a lock-free 32-bit unsigned scalar. The zero value holds 0.
type Uint32 struct {
	v atomic.Uint32
}

// NewUint32 returns a scalar initialized to v.
func NewUint32(v uint32) *Uint32 {
	s := &Uint32{}
	s.v.Store(v)
	return s
}

// Load returns the current value.
func (s *Uint32) Load() uint32 { return s.v.Load() }

// Store replaces the current value.
func (s *Uint32) Store(v uint32) { s.v.Store(v) }

// Add adds delta and returns the new value.
func (s *Uint32) Add(delta uint32) uint32 { return s.v.Add(delta) }

// Subtract subtracts delta and returns the new value.
func (s *Uint32) Subtract(delta uint32) uint32 { return s.v.Add(^(delta - 1)) }

// CompareAndSwap stores newValue iff the scalar holds expected.
// The swap is attempted once; callers own any retry policy.
func (s *Uint32) CompareAndSwap(expected, newValue uint32) bool {
	return s.v.CompareAndSwap(expected, newValue)
}

// Uint64 is a lock-free 64-bit unsigned scalar. The zero value holds 0.
type Uint64 struct {
	v atomic.Uint64
}

// NewUint64 returns a scalar initialized to v.
func NewUint64(v uint64) *Uint64 {
	s := &Uint64{}
	s.v.Store(v)
	return s
}

// Load returns the current value.
func (s *Uint64) Load() uint64 { return s.v.Load() }

// Store replaces the current value.
func (s *Uint64) Store(v uint64) { s.v.Store(v) }

// Add adds delta and returns the new value.
func (s *Uint64) Add(delta uint64) uint64 { return s.v.Add(delta) }

// Subtract subtracts delta and returns the new value.
func (s *Uint64) Subtract(delta uint64) uint64 { return s.v.Add(^(delta - 1)) }

// CompareAndSwap stores newValue iff the scalar holds expected.
// The swap is attempted once; callers own any retry policy.
func (s *Uint64) CompareAndSwap(expected, newValue uint64) bool {
	return s.v.CompareAndSwap(expected, newValue)
}
