package object_test

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/object"
)

type point struct{ x, y int }

func newPointType(finalized *int) *object.Type {
	return object.NewType[*point]("Point", object.Capabilities[*point]{
		Finalize: func(p *point) { *finalized++ },
		Copy: func(p *point) (*point, error) {
			c := *p
			return &c, nil
		},
		Equals: func(a, b *point) bool { return *a == *b },
		Compare: func(a, b *point) (int, error) {
			if a.x != b.x {
				return a.x - b.x, nil
			}
			return a.y - b.y, nil
		},
		HashCode: func(p *point) uint32 { return uint32(p.x*31 + p.y) },
	})
}

var blobType = object.NewType[[]byte]("Blob", object.Capabilities[[]byte]{})

func TestRefcount_FinalizesOnLastRelease(t *testing.T) {
	var finalized int
	typ := newPointType(&finalized)

	o, err := object.Create(typ, &point{1, 2})
	require.NoError(t, err)
	require.Equal(t, uint64(1), o.References())

	const n = 5
	handles := make([]*object.Object, n)
	for i := range handles {
		handles[i] = object.Acquire(o)
		require.Same(t, o, handles[i], "Acquire returns the same handle")
	}
	require.Equal(t, uint64(n+1), o.References())

	for i := range handles {
		object.Release(&handles[i])
		assert.Nil(t, handles[i], "Release clears the caller's handle")
		assert.Zero(t, finalized, "finalize must not run before the last release")
	}

	object.Release(&o)
	assert.Nil(t, o)
	assert.Equal(t, 1, finalized, "finalize runs exactly once")
}

func TestRefcount_ConcurrentAcquireRelease(t *testing.T) {
	var (
		mu        sync.Mutex
		finalized int
	)
	typ := object.NewType[int]("Int", object.Capabilities[int]{
		Finalize: func(int) {
			mu.Lock()
			finalized++
			mu.Unlock()
		},
	})

	o, err := object.Create(typ, 42)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		h := object.Acquire(o)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				tmp := object.Acquire(h)
				object.Release(&tmp)
			}
			object.Release(&h)
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(1), o.References())
	object.Release(&o)
	assert.Equal(t, 1, finalized)
}

func TestRelease_NilIsNoop(t *testing.T) {
	var o *object.Object
	assert.NotPanics(t, func() { object.Release(&o) })
	assert.NotPanics(t, func() { object.Release(nil) })
}

func TestRelease_PastZeroIsFatal(t *testing.T) {
	o, err := object.Create(blobType, []byte("x"))
	require.NoError(t, err)

	alias := o
	object.Release(&o)

	err = recoverInvariant(func() { object.Release(&alias) })
	require.Error(t, err)
	var inv *object.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "Release", inv.Op)
	assert.Equal(t, "Blob", inv.Type)
	assert.Zero(t, alias.References(), "failed release leaves the count at zero")
}

func TestAcquire_DeadObjectIsFatal(t *testing.T) {
	o, err := object.Create(blobType, []byte("x"))
	require.NoError(t, err)
	alias := o
	object.Release(&o)

	err = recoverInvariant(func() { object.Acquire(alias) })
	var inv *object.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "Acquire", inv.Op)
	assert.Zero(t, alias.References(), "failed acquire leaves the count at zero")
}

func TestAcquire_DeadObjectStaysDead(t *testing.T) {
	var finalized int
	o, err := object.Create(newPointType(&finalized), &point{})
	require.NoError(t, err)
	alias := o
	object.Release(&o)
	require.Equal(t, 1, finalized)

	for i := 0; i < 3; i++ {
		require.Error(t, recoverInvariant(func() { object.Acquire(alias) }))
	}
	assert.Zero(t, alias.References())

	// A release after the failed acquires would finalize again if the
	// count had been left raised.
	require.Error(t, recoverInvariant(func() {
		a := alias
		object.Release(&a)
	}))
	assert.Equal(t, 1, finalized, "finalize runs exactly once")
}

func TestCreate_Errors(t *testing.T) {
	_, err := object.Create(nil, 1)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = object.Create(blobType, "not bytes")
	assert.ErrorIs(t, err, api.ErrTypeMismatch)
}

func TestAllocate(t *testing.T) {
	o, err := object.Allocate(blobType, 64)
	require.NoError(t, err)
	b, ok := object.Value[[]byte](o)
	require.True(t, ok)
	assert.Len(t, b, 64)
	object.Release(&o)

	_, err = object.Allocate(blobType, -1)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	prev := object.SetAllocationLimit(128)
	defer object.SetAllocationLimit(prev)
	_, err = object.Allocate(blobType, 129)
	assert.ErrorIs(t, err, api.ErrOutOfMemory)
}

func TestDispatch_MissingSlots(t *testing.T) {
	a, err := object.Create(blobType, []byte("a"))
	require.NoError(t, err)
	defer object.Release(&a)

	_, err = object.Equals(a, a)
	assert.ErrorIs(t, err, api.ErrNotSupported)
	_, err = object.Compare(a, a)
	assert.ErrorIs(t, err, api.ErrNotSupported)
	_, err = object.HashCode(a)
	assert.ErrorIs(t, err, api.ErrNotSupported)
	_, err = object.Copy(a)
	assert.ErrorIs(t, err, api.ErrNotSupported)
	_, err = object.ToJSON(a)
	assert.ErrorIs(t, err, api.ErrNotSupported)

	assert.Regexp(t, regexp.MustCompile(`^Blob@0x[0-9a-f]+$`), object.Display(a, 0))
	assert.Regexp(t, regexp.MustCompile(`^    Blob@0x[0-9a-f]+$`), object.Display(a, 2))
}

func TestDispatch_NilHandles(t *testing.T) {
	var finalized int
	p, err := object.Create(newPointType(&finalized), &point{})
	require.NoError(t, err)
	defer object.Release(&p)

	eq, err := object.Equals(nil, nil)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = object.Equals(p, nil)
	require.NoError(t, err)
	assert.False(t, eq)

	c, err := object.Compare(p, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = object.Compare(nil, p)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = object.Compare(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, c)
}

func TestDispatch_AcrossTypes(t *testing.T) {
	var finalized int
	pa, err := object.Create(newPointType(&finalized), &point{})
	require.NoError(t, err)
	defer object.Release(&pa)
	pb, err := object.Create(newPointType(&finalized), &point{})
	require.NoError(t, err)
	defer object.Release(&pb)

	eq, err := object.Equals(pa, pb)
	require.NoError(t, err)
	assert.False(t, eq, "distinct types are never equal")

	_, err = object.Compare(pa, pb)
	assert.ErrorIs(t, err, api.ErrTypeMismatch)
}

func TestCompare_SlotError(t *testing.T) {
	errIncomparable := errors.New("incomparable")
	typ := object.NewType[int]("Partial", object.Capabilities[int]{
		Compare: func(a, b int) (int, error) {
			if a < 0 || b < 0 {
				return 0, errIncomparable
			}
			return a - b, nil
		},
	})
	a, err := object.Create(typ, 3)
	require.NoError(t, err)
	defer object.Release(&a)
	b, err := object.Create(typ, -1)
	require.NoError(t, err)
	defer object.Release(&b)
	c, err := object.Create(typ, 10)
	require.NoError(t, err)
	defer object.Release(&c)

	_, err = object.Compare(a, b)
	assert.ErrorIs(t, err, errIncomparable)

	n, err := object.Compare(a, c)
	require.NoError(t, err)
	assert.Equal(t, -1, n, "result is normalized")
}

func TestContract_EqualsCompareHash(t *testing.T) {
	var finalized int
	typ := newPointType(&finalized)
	pts := []*point{{0, 0}, {1, 2}, {1, 2}, {2, 1}, {-3, 5}, {2, 1}}
	objs := make([]*object.Object, len(pts))
	for i, p := range pts {
		o, err := object.Create(typ, p)
		require.NoError(t, err)
		objs[i] = o
	}
	defer func() {
		for i := range objs {
			object.Release(&objs[i])
		}
	}()

	eq := func(a, b *object.Object) bool {
		v, err := object.Equals(a, b)
		require.NoError(t, err)
		return v
	}
	cmp := func(a, b *object.Object) int {
		v, err := object.Compare(a, b)
		require.NoError(t, err)
		return v
	}
	hash := func(a *object.Object) uint32 {
		v, err := object.HashCode(a)
		require.NoError(t, err)
		return v
	}

	for _, a := range objs {
		assert.True(t, eq(a, a), "reflexive")
		for _, b := range objs {
			assert.Equal(t, eq(a, b), eq(b, a), "symmetric")
			assert.Equal(t, cmp(a, b), -cmp(b, a), "antisymmetric")
			assert.Equal(t, eq(a, b), cmp(a, b) == 0, "consistent with Compare")
			if eq(a, b) {
				assert.Equal(t, hash(a), hash(b), "equal objects hash equally")
			}
			for _, c := range objs {
				if eq(a, b) && eq(b, c) {
					assert.True(t, eq(a, c), "transitive")
				}
			}
		}
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	var finalized int
	typ := newPointType(&finalized)
	o, err := object.Create(typ, &point{3, 4})
	require.NoError(t, err)

	c, err := object.Copy(o)
	require.NoError(t, err)
	require.NotSame(t, o, c)
	assert.Equal(t, uint64(1), c.References())

	eq, err := object.Equals(o, c)
	require.NoError(t, err)
	assert.True(t, eq)

	p, _ := object.Value[*point](c)
	p.x = 99
	eq, _ = object.Equals(o, c)
	assert.False(t, eq, "mutating the copy leaves the original alone")

	object.Release(&o)
	object.Release(&c)
	assert.Equal(t, 2, finalized)
}

func TestStats_NoLeaks(t *testing.T) {
	before := object.Outstanding()
	objs := make([]*object.Object, 10)
	for i := range objs {
		o, err := object.Allocate(blobType, 8)
		require.NoError(t, err)
		objs[i] = o
	}
	assert.Equal(t, before+10, object.Outstanding())
	for i := range objs {
		object.Release(&objs[i])
	}
	assert.Equal(t, before, object.Outstanding())
}

func recoverInvariant(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
