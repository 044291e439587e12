// File: core/object/object.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Managed object allocation and reference counting.

package object

import (
	"fmt"
	"math"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
)

// DefaultAllocationLimit caps Allocate payloads unless SetAllocationLimit
// says otherwise.
const DefaultAllocationLimit = 1 << 30

// Object is a handle to a managed, reference-counted value.
// Handles are shared by pointer; the count, not the GC, defines validity.
type Object struct {
	refs    atomic.Counter64
	typ     *Type
	payload any
}

// runtime-wide accounting, see Stats.
var (
	created   atomic.Counter64
	finalized atomic.Counter64
	limit     = atomic.NewCounter64(DefaultAllocationLimit)
)

// Create wraps payload in a new managed object holding one reference.
func Create(typ *Type, payload any) (*Object, error) {
	if typ == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "object: nil capability table")
	}
	if !typ.accept(payload) {
		return nil, api.NewError(api.ErrCodeTypeMismatch, "object: payload does not match type").
			WithContext("type", typ.name).
			WithContext("payload", fmt.Sprintf("%T", payload))
	}
	o := &Object{typ: typ, payload: payload}
	o.refs.Store(1)
	created.Add(1)
	return o, nil
}

// Allocate creates an object whose payload is a zeroed byte region of the
// given size. typ must accept []byte payloads.
func Allocate(typ *Type, size int) (*Object, error) {
	if size < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "object: negative payload size").
			WithContext("size", size)
	}
	if uint64(size) > limit.Load() {
		return nil, api.NewError(api.ErrCodeOutOfMemory, "object: payload exceeds allocation limit").
			WithContext("size", size).
			WithContext("limit", limit.Load())
	}
	return Create(typ, make([]byte, size))
}

// SetAllocationLimit changes the largest payload Allocate will satisfy and
// returns the previous limit.
func SetAllocationLimit(n uint64) uint64 {
	for {
		old := limit.Load()
		if limit.CompareAndSwap(old, n) {
			return old
		}
	}
}

// Acquire adds a reference to o and returns the same handle.
// Acquiring an object whose count already reached zero is fatal; the count
// is left at zero.
func Acquire(o *Object) *Object {
	if o == nil {
		fatal("Acquire", nil, "nil handle")
	}
	if o.refs.Add(1) == 1 {
		o.refs.Subtract(1)
		fatal("Acquire", o, "object already finalized")
	}
	return o
}

// Release drops the reference held through *op and clears *op.
// The release that takes the count to zero finalizes the object before
// returning. Releasing a nil handle is a no-op; releasing past zero is fatal.
func Release(op **Object) {
	if op == nil || *op == nil {
		return
	}
	o := *op
	*op = nil

	switch o.refs.Subtract(1) {
	case 0:
		o.destroy()
	case math.MaxUint64:
		o.refs.Add(1)
		fatal("Release", o, "reference count dropped below zero")
	}
}

func (o *Object) destroy() {
	if o.typ.finalize != nil {
		o.typ.finalize(o)
	}
	o.payload = nil
	finalized.Add(1)
}

// References returns the current reference count. The value is a snapshot
// and may be stale by the time it is used.
func (o *Object) References() uint64 { return o.refs.Load() }

// Type returns the capability table o was created with.
func (o *Object) Type() *Type { return o.typ }

// Value returns the payload of o as T.
func Value[T any](o *Object) (T, bool) {
	if o == nil {
		var zero T
		return zero, false
	}
	v, ok := o.payload.(T)
	return v, ok
}

// RuntimeStats aggregates process-wide allocation counters.
type RuntimeStats struct {
	Created     uint64
	Finalized   uint64
	Outstanding uint64
}

// Stats returns a snapshot of the allocation counters.
func Stats() RuntimeStats {
	f := finalized.Load()
	c := created.Load()
	return RuntimeStats{Created: c, Finalized: f, Outstanding: c - f}
}

// Outstanding returns the number of live managed objects.
func Outstanding() uint64 { return Stats().Outstanding }
