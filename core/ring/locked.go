// File: core/ring/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Locked is the mutex-guarded ring backend: a single lock around a
// github.com/eapache/queue with the capacity enforced on insert.

package ring

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-core/api"
)

var _ api.BlockingRing[any] = (*Locked[any])(nil)

// Locked is a blocking bounded ring serialized by one mutex.
type Locked[T any] struct {
	base[T, *queueStore[T]]
}

// NewLocked creates a Locked ring holding up to capacity items.
func NewLocked[T any](capacity int, destroy Destroyer[T], opts ...Option) (*Locked[T], error) {
	if capacity < 1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: capacity must be at least 1").
			WithContext("capacity", capacity)
	}
	o := newOptions(opts)
	r := &Locked[T]{}
	r.init(&queueStore[T]{q: queue.New(), size: capacity}, capacity, destroy, o)
	r.log.WithField("capacity", capacity).
		WithField("backend", BackendLocked).
		Debug("ring created")
	return r, nil
}

type queueStore[T any] struct {
	mu   sync.Mutex
	q    *queue.Queue
	size int
}

func (s *queueStore[T]) tryPut(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Length() >= s.size {
		return false
	}
	s.q.Add(item)
	return true
}

func (s *queueStore[T]) tryGet() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Length() == 0 {
		var zero T
		return zero, false
	}
	item, _ := s.q.Remove().(T)
	return item, true
}

func (s *queueStore[T]) canPut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length() < s.size
}

func (s *queueStore[T]) canGet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length() > 0
}

func (s *queueStore[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length()
}

func (s *queueStore[T]) reset() {
	s.mu.Lock()
	s.q = queue.New()
	s.mu.Unlock()
}
