// Package api
// Author: momentics@gmail.com
//
// Bounded ring buffer contracts for cross-goroutine handoff of owned items.

package api

import "context"

// Ring is a non-blocking bounded FIFO contract.
type Ring[T any] interface {
	// TryPut adds an item, returns false if full or closed.
	TryPut(item T) bool
	// TryGet removes the oldest item, returns false if empty or closed.
	TryGet() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}

// BlockingRing is a bounded N×M queue: Put waits while full, Get waits while
// empty. A successful Put moves ownership of the item into the ring; a
// successful Get moves it to the caller.
type BlockingRing[T any] interface {
	Ring[T]

	// Put blocks until the item is queued. Returns ErrClosed once the ring
	// is draining, in which case the caller still owns item.
	Put(item T) error
	// Move is Put that clears *item on success, so the producer cannot
	// touch the item after handing it over.
	Move(item *T) error
	// Get blocks until an item is available.
	Get() (T, error)
	// PutContext is Put bounded by ctx.
	PutContext(ctx context.Context, item T) error
	// GetContext is Get bounded by ctx.
	GetContext(ctx context.Context) (T, error)
	// Release drains the ring through its destroyer and frees it.
	Release()
}
