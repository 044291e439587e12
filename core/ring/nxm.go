// File: core/ring/nxm.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NxM is a bounded MPMC ring over sequence-numbered cells, after Dmitry
// Vyukov's bounded queue. Head and tail live on separate cache lines.

package ring

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
)

// Ensure compile-time interface compliance.
var _ api.BlockingRing[any] = (*NxM[any])(nil)

// NxM is a blocking bounded ring safe for N producers and M consumers.
type NxM[T any] struct {
	base[T, *cellStore[T]]
}

// New creates an NxM ring holding up to capacity items. destroy is invoked
// on every item still queued at Release; it may be nil.
func New[T any](capacity int, destroy Destroyer[T], opts ...Option) (*NxM[T], error) {
	if capacity < 1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: capacity must be at least 1").
			WithContext("capacity", capacity)
	}
	o := newOptions(opts)
	r := &NxM[T]{}
	r.init(newCellStore[T](uint64(capacity)), capacity, destroy, o)
	r.log.WithField("capacity", capacity).
		WithField("backend", BackendLockFree).
		Debug("ring created")
	return r, nil
}

type cell[T any] struct {
	seq  atomic.Counter64
	data T
}

// cellStore positions grow without bound; a cell is free for position p
// when its seq equals p and full when it equals p+1. A single cell cannot
// tell "full at p" from "free at p+1", so there are always at least two
// cells and the logical capacity is enforced by reserving count first.
//
// count holds reserved puts minus completed gets: a put reserves before it
// claims a cell and a get gives its unit back only after the cell is free
// again, so 0 <= count <= capacity at all times.
type cellStore[T any] struct {
	_     cpu.CacheLinePad
	head  atomic.Counter64
	_     cpu.CacheLinePad
	tail  atomic.Counter64
	_     cpu.CacheLinePad
	count atomic.Counter64
	_     cpu.CacheLinePad

	capacity uint64
	size     uint64
	mask     uint64
	pow2     bool
	cells    []cell[T]
}

func newCellStore[T any](capacity uint64) *cellStore[T] {
	size := capacity
	if size < 2 {
		size = 2
	}
	s := &cellStore[T]{
		capacity: capacity,
		size:     size,
		mask:     size - 1,
		pow2:     size&(size-1) == 0,
		cells:    make([]cell[T], size),
	}
	for i := range s.cells {
		s.cells[i].seq.Store(uint64(i))
	}
	return s
}

func (s *cellStore[T]) at(pos uint64) *cell[T] {
	if s.pow2 {
		return &s.cells[pos&s.mask]
	}
	return &s.cells[pos%s.size]
}

// reserve claims one unit of capacity.
func (s *cellStore[T]) reserve() bool {
	for {
		n := s.count.Load()
		if n >= s.capacity {
			return false
		}
		if s.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (s *cellStore[T]) tryPut(item T) bool {
	if !s.reserve() {
		return false
	}
	for {
		tail := s.tail.Load()
		c := s.at(tail)
		dif := int64(c.seq.Load()) - int64(tail)
		switch {
		case dif == 0:
			if s.tail.CompareAndSwap(tail, tail+1) {
				c.data = item
				c.seq.Store(tail + 1)
				return true
			}
		case dif < 0:
			// The cell's previous item is still being taken.
			s.count.Subtract(1)
			return false
		}
		// tail moved, retry
	}
}

func (s *cellStore[T]) tryGet() (T, bool) {
	var zero T
	for {
		head := s.head.Load()
		c := s.at(head)
		dif := int64(c.seq.Load()) - int64(head+1)
		switch {
		case dif == 0:
			if s.head.CompareAndSwap(head, head+1) {
				item := c.data
				c.data = zero
				c.seq.Store(head + s.size)
				s.count.Subtract(1)
				return item, true
			}
		case dif < 0:
			return zero, false // empty
		}
		// head moved, retry
	}
}

func (s *cellStore[T]) canPut() bool {
	if s.count.Load() >= s.capacity {
		return false
	}
	tail := s.tail.Load()
	return int64(s.at(tail).seq.Load())-int64(tail) >= 0
}

func (s *cellStore[T]) canGet() bool {
	head := s.head.Load()
	return int64(s.at(head).seq.Load())-int64(head+1) >= 0
}

// len counts reserved slots, including puts still writing their cell.
func (s *cellStore[T]) len() int { return int(s.count.Load()) }

func (s *cellStore[T]) reset() { s.cells = nil }
