// Package api
// Author: momentics
//
// Live debug and contract validation support for production workloads.

package api

// Debug exposes runtime introspection for objects and rings.
type Debug interface {
	// DumpState emits a snapshot of every registered probe.
	DumpState() map[string]any

	// RegisterProbe registers a named probe; a later registration under the
	// same name replaces the earlier one.
	RegisterProbe(name string, fn func() any)

	// UnregisterProbe removes a probe, e.g. when its ring is released.
	UnregisterProbe(name string)
}
