//go:build !hioload_noatomics

// File: core/atomic/counter_native.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomic

// Backend names the scalar implementation compiled into Counter32/Counter64.
const Backend = "lockfree"

// Counter32 and Counter64 are the scalars embedded by the object runtime
// and the ring buffer.
type (
	Counter32 = Uint32
	Counter64 = Uint64
)

// NewCounter32 returns a Counter32 initialized to v.
func NewCounter32(v uint32) *Counter32 { return NewUint32(v) }

// NewCounter64 returns a Counter64 initialized to v.
func NewCounter64(v uint64) *Counter64 { return NewUint64(v) }
