//go:build hioload_noatomics

// File: core/atomic/counter_locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomic

// Backend names the scalar implementation compiled into Counter32/Counter64.
const Backend = "mutex"

// Counter32 and Counter64 are the scalars embedded by the object runtime
// and the ring buffer.
type (
	Counter32 = Locked32
	Counter64 = Locked64
)

// NewCounter32 returns a Counter32 initialized to v.
func NewCounter32(v uint32) *Counter32 { return NewLocked(v) }

// NewCounter64 returns a Counter64 initialized to v.
func NewCounter64(v uint64) *Counter64 { return NewLocked(v) }
