// File: core/ring/base.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking Put/Get, ownership transfer and drain on top of a storage backend.

package ring

import (
	"context"

	"github.com/lthibault/log"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
)

// storage is a non-blocking bounded FIFO. Implementations must be safe for
// concurrent producers and consumers.
type storage[T any] interface {
	tryPut(item T) bool
	tryGet() (T, bool)
	canPut() bool
	canGet() bool
	len() int
	reset()
}

// Destroyer releases one item still queued when its ring is released.
// The pointer addresses a copy of the slot; clearing it is allowed.
type Destroyer[T any] func(item *T)

type base[T any, S storage[T]] struct {
	gate
	store    S
	capacity int
	destroy  Destroyer[T]
	name     string
	log      log.Logger
	counters counters
	exposed  api.Debug
}

func (b *base[T, S]) init(store S, capacity int, destroy Destroyer[T], o options) {
	b.gate.init()
	b.store = store
	b.capacity = capacity
	b.destroy = destroy
	b.name = o.name
	b.log = o.log.WithField("ring", o.name)
}

// Put blocks until item is queued. On success the ring owns item.
func (b *base[T, S]) Put(item T) error {
	return b.put(context.Background(), item)
}

// PutContext is Put that gives up when ctx is done, returning ctx.Err().
// A ctx that is already done fails without touching the ring.
func (b *base[T, S]) PutContext(ctx context.Context, item T) error {
	return b.put(ctx, item)
}

// Move queues *item and clears the caller's handle on success.
func (b *base[T, S]) Move(item *T) error {
	if err := b.put(context.Background(), *item); err != nil {
		return err
	}
	var zero T
	*item = zero
	return nil
}

// Get blocks until an item is available. The caller owns the result.
func (b *base[T, S]) Get() (T, error) {
	return b.get(context.Background())
}

// GetContext is Get that gives up when ctx is done, returning ctx.Err().
func (b *base[T, S]) GetContext(ctx context.Context) (T, error) {
	return b.get(ctx)
}

// TryPut queues item without blocking; false if full or closed.
func (b *base[T, S]) TryPut(item T) bool {
	if !b.enter() {
		return false
	}
	defer b.exit()
	if !b.store.tryPut(item) {
		return false
	}
	b.counters.puts.Add(1)
	b.notify(&b.notEmpty, &b.getWaiters)
	return true
}

// TryGet dequeues without blocking; false if empty or closed.
func (b *base[T, S]) TryGet() (T, bool) {
	if !b.enter() {
		var zero T
		return zero, false
	}
	defer b.exit()
	item, ok := b.store.tryGet()
	if !ok {
		return item, false
	}
	b.counters.gets.Add(1)
	b.notify(&b.notFull, &b.putWaiters)
	return item, true
}

func (b *base[T, S]) put(ctx context.Context, item T) error {
	if !b.enter() {
		return api.ErrClosed
	}
	defer b.exit()
	if err := ctx.Err(); err != nil {
		return err
	}
	defer b.watch(ctx, &b.notFull)()

	blocked := false
	for !b.store.tryPut(item) {
		if !blocked {
			blocked = true
			b.counters.blockedPuts.Add(1)
		}
		if err := b.await(ctx, &b.notFull, &b.putWaiters, b.store.canPut); err != nil {
			return err
		}
	}
	b.counters.puts.Add(1)
	b.notify(&b.notEmpty, &b.getWaiters)
	return nil
}

func (b *base[T, S]) get(ctx context.Context) (T, error) {
	if !b.enter() {
		var zero T
		return zero, api.ErrClosed
	}
	defer b.exit()
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	defer b.watch(ctx, &b.notEmpty)()

	blocked := false
	for {
		if item, ok := b.store.tryGet(); ok {
			b.counters.gets.Add(1)
			b.notify(&b.notFull, &b.putWaiters)
			return item, nil
		}
		if !blocked {
			blocked = true
			b.counters.blockedGets.Add(1)
		}
		if err := b.await(ctx, &b.notEmpty, &b.getWaiters, b.store.canGet); err != nil {
			var zero T
			return zero, err
		}
	}
}

// Len returns the number of queued items.
func (b *base[T, S]) Len() int { return b.store.len() }

// Cap returns the fixed capacity.
func (b *base[T, S]) Cap() int { return b.capacity }

// Name returns the ring label used in logs and probes.
func (b *base[T, S]) Name() string { return b.name }

// Release drains the ring and frees its storage. Blocked and later callers
// get api.ErrClosed. Every item still queued is passed to the destroyer in
// FIFO order. Releasing a ring twice is fatal.
func (b *base[T, S]) Release() {
	if !b.state.CompareAndSwap(stateActive, stateDraining) {
		err := &InvariantError{Op: "Release", Ring: b.name, Detail: "ring already released"}
		b.log.Error(err.Detail)
		panic(err)
	}
	b.wakeAll()
	b.quiesce()

	var drained uint64
	for {
		item, ok := b.store.tryGet()
		if !ok {
			break
		}
		if b.destroy != nil {
			b.destroy(&item)
		}
		drained++
	}
	b.store.reset()
	b.counters.drained.Add(drained)
	b.state.Store(stateDestroyed)

	if b.exposed != nil {
		unexpose(b.exposed, b.name)
	}
	b.log.WithField("drained", drained).Debug("ring released")
}

// counters back Stats.
type counters struct {
	puts        atomic.Counter64
	gets        atomic.Counter64
	blockedPuts atomic.Counter64
	blockedGets atomic.Counter64
	drained     atomic.Counter64
}
