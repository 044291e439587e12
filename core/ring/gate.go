// File: core/ring/gate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lifecycle state and wait/notify shared by every ring backend.

package ring

import (
	"context"
	"runtime"
	"sync"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
)

// Ring lifecycle: Active -> Draining -> Destroyed.
const (
	stateActive uint32 = iota
	stateDraining
	stateDestroyed
)

// gate parks producers while full and consumers while empty.
//
// A waiter bumps its waiter count under mu before re-checking readiness; a
// notifier changes the storage before reading that count. Both sides use
// sequentially consistent scalars, so at least one of them observes the
// other and no wakeup is lost.
type gate struct {
	mu       sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond

	putWaiters atomic.Counter32
	getWaiters atomic.Counter32

	state    atomic.Counter32
	inflight atomic.Counter64
}

func (g *gate) init() {
	g.notFull.L = &g.mu
	g.notEmpty.L = &g.mu
}

// enter registers an operation; false once the ring left Active.
func (g *gate) enter() bool {
	g.inflight.Add(1)
	if g.state.Load() != stateActive {
		g.inflight.Subtract(1)
		return false
	}
	return true
}

func (g *gate) exit() { g.inflight.Subtract(1) }

// await parks until ready holds, the ring leaves Active, or ctx is done.
func (g *gate) await(ctx context.Context, cond *sync.Cond, waiters *atomic.Counter32, ready func() bool) error {
	g.mu.Lock()
	waiters.Add(1)
	for g.state.Load() == stateActive && !ready() && ctx.Err() == nil {
		cond.Wait()
	}
	waiters.Subtract(1)
	if ctx.Err() != nil && ready() {
		// Hand a wakeup this caller will not use to the next waiter.
		cond.Signal()
	}
	g.mu.Unlock()

	if g.state.Load() != stateActive {
		return api.ErrClosed
	}
	return ctx.Err()
}

// notify wakes one waiter on cond if any is parked.
func (g *gate) notify(cond *sync.Cond, waiters *atomic.Counter32) {
	if waiters.Load() == 0 {
		return
	}
	g.mu.Lock()
	cond.Signal()
	g.mu.Unlock()
}

func (g *gate) wakeAll() {
	g.mu.Lock()
	g.notFull.Broadcast()
	g.notEmpty.Broadcast()
	g.mu.Unlock()
}

// watch wakes every waiter on cond when ctx is done. The returned func
// detaches the watcher.
func (g *gate) watch(ctx context.Context, cond *sync.Cond) func() bool {
	if ctx.Done() == nil {
		return func() bool { return true }
	}
	return context.AfterFunc(ctx, func() {
		g.mu.Lock()
		cond.Broadcast()
		g.mu.Unlock()
	})
}

// quiesce waits for operations that entered before the state change.
// They have been woken, so this is short.
func (g *gate) quiesce() {
	for g.inflight.Load() != 0 {
		runtime.Gosched()
	}
}
