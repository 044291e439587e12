// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-core components.

package benchmarks

import (
	"testing"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/container/keyvalue"
	"github.com/momentics/hioload-core/core/atomic"
	"github.com/momentics/hioload-core/core/object"
	"github.com/momentics/hioload-core/core/object/boxed"
	"github.com/momentics/hioload-core/core/ring"
)

// BenchmarkScalarAdd compares the two scalar backends under contention.
func BenchmarkScalarAdd(b *testing.B) {
	for name, s := range map[string]api.Scalar[uint64]{
		"lockfree": atomic.NewUint64(0),
		"mutex":    atomic.NewLocked[uint64](0),
	} {
		s := s
		b.Run(name, func(b *testing.B) {
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Add(1)
				}
			})
		})
	}
}

// BenchmarkRingThroughput moves ints through each ring backend with
// parallel goroutines that both put and get.
func BenchmarkRingThroughput(b *testing.B) {
	for _, backend := range []ring.Backend{ring.BackendLockFree, ring.BackendLocked} {
		b.Run(string(backend), func(b *testing.B) {
			r, err := ring.Open[int](backend, 1024, nil)
			if err != nil {
				b.Fatal(err)
			}
			defer r.Release()

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					if !r.TryPut(i) {
						r.TryGet()
					}
					i++
				}
			})
		})
	}
}

// BenchmarkRingBlocking is one producer and one consumer with blocking calls.
func BenchmarkRingBlocking(b *testing.B) {
	for _, backend := range []ring.Backend{ring.BackendLockFree, ring.BackendLocked} {
		b.Run(string(backend), func(b *testing.B) {
			r, err := ring.Open[int](backend, 64, nil)
			if err != nil {
				b.Fatal(err)
			}
			defer r.Release()

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < b.N; i++ {
					if _, err := r.Get(); err != nil {
						return
					}
				}
			}()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := r.Put(i); err != nil {
					b.Fatal(err)
				}
			}
			<-done
		})
	}
}

// BenchmarkObjectLifecycle creates and finalizes a boxed counter.
func BenchmarkObjectLifecycle(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		o, err := boxed.NewUint64(uint64(i))
		if err != nil {
			b.Fatal(err)
		}
		object.Release(&o)
	}
}

// BenchmarkAcquireRelease measures shared reference counting on one object.
func BenchmarkAcquireRelease(b *testing.B) {
	o, err := boxed.NewString("shared")
	if err != nil {
		b.Fatal(err)
	}
	defer object.Release(&o)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h := object.Acquire(o)
			object.Release(&h)
		}
	})
}

// BenchmarkKeyValueHash dispatches HashCode through a pair to its key.
func BenchmarkKeyValueHash(b *testing.B) {
	k, _ := boxed.NewString("benchmark-key")
	v, _ := boxed.NewUint64(1)
	kv, err := keyvalue.New(k, v)
	if err != nil {
		b.Fatal(err)
	}
	object.Release(&k)
	object.Release(&v)
	defer object.Release(&kv)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := object.HashCode(kv); err != nil {
			b.Fatal(err)
		}
	}
}
