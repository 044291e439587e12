// File: core/object/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package object implements the managed object runtime: reference-counted
// handles whose behaviour is dispatched through a per-type capability table.
//
// Every Object carries an atomic reference count and an immutable *Type.
// Create hands out a handle with one reference; Acquire adds one; Release
// drops one and, on the 1->0 transition, runs the type's Finalize slot
// synchronously before returning. Nothing is collected later.
//
// Equals, Compare, HashCode, Copy, Display and ToJSON dispatch through the
// Type. A missing slot yields api.ErrNotSupported, except Finalize (skipped)
// and Display (renders "<type>@<address>").
//
// Misuse of the reference count (acquiring a dead object, releasing past
// zero) is a fatal invariant violation and panics with *InvariantError.
package object
