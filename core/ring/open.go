// File: core/ring/open.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "github.com/momentics/hioload-core/api"

// Backend names a ring storage implementation.
type Backend string

const (
	// BackendLockFree selects NxM.
	BackendLockFree Backend = "lockfree"
	// BackendLocked selects Locked.
	BackendLocked Backend = "locked"
)

// Open creates a ring of the named backend. An empty name selects
// BackendLockFree. The choice is made once, here.
func Open[T any](backend Backend, capacity int, destroy Destroyer[T], opts ...Option) (api.BlockingRing[T], error) {
	switch backend {
	case "", BackendLockFree:
		r, err := New(capacity, destroy, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendLocked:
		r, err := NewLocked(capacity, destroy, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: unknown backend").
		WithContext("backend", string(backend))
}
