// File: core/ring/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package ring implements bounded N×M ring buffers for handing owned items
// between any number of producer and consumer goroutines.
//
// Put blocks while the ring is full and Get blocks while it is empty;
// waiting goroutines park on a condition variable and are woken by the
// complementary operation. Slot reservation is a single compare-and-swap on
// the head or tail scalar, so FIFO order is the order in which reservations
// succeed.
//
// A successful Put moves ownership of the item into the ring and a
// successful Get moves it out. Release drains whatever is still queued
// through the destroyer given at construction, head to tail, so nothing
// enqueued is leaked:
//
//	r, _ := ring.New[*object.Object](128, object.Release)
//	defer r.Release()
//
// Two storage backends share the blocking and drain machinery: NxM uses
// sequence-numbered cells over core/atomic scalars, Locked keeps items in a
// mutex-guarded github.com/eapache/queue. Open picks one by name.
package ring
