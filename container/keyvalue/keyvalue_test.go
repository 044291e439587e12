package keyvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/container/keyvalue"
	"github.com/momentics/hioload-core/core/object"
	"github.com/momentics/hioload-core/core/object/boxed"
)

func mustString(t *testing.T, s string) *object.Object {
	t.Helper()
	o, err := boxed.NewString(s)
	require.NoError(t, err)
	return o
}

func mustUint(t *testing.T, v uint64) *object.Object {
	t.Helper()
	o, err := boxed.NewUint64(v)
	require.NoError(t, err)
	return o
}

func TestPair_OwnsReferences(t *testing.T) {
	before := object.Outstanding()

	k, v := mustString(t, "answer"), mustUint(t, 42)
	kv, err := keyvalue.New(k, v)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), k.References(), "pair holds its own key reference")
	assert.Equal(t, uint64(2), v.References(), "pair holds its own value reference")

	object.Release(&k)
	object.Release(&v)

	key, err := keyvalue.Key(kv)
	require.NoError(t, err)
	s, err := boxed.StringValue(key)
	require.NoError(t, err)
	assert.Equal(t, "answer", s)

	object.Release(&kv)
	assert.Equal(t, before, object.Outstanding(), "finalizing the pair releases key and value")
}

func TestPair_NilKey(t *testing.T) {
	_, err := keyvalue.New(nil, nil)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestPair_SetValue(t *testing.T) {
	before := object.Outstanding()

	k := mustString(t, "k")
	kv, err := keyvalue.New(k, nil)
	require.NoError(t, err)
	object.Release(&k)

	v, err := keyvalue.Value(kv)
	require.NoError(t, err)
	assert.Nil(t, v)

	first := mustUint(t, 1)
	require.NoError(t, keyvalue.SetValue(kv, first))
	second := mustUint(t, 2)
	require.NoError(t, keyvalue.SetValue(kv, second))
	assert.Equal(t, uint64(1), first.References(), "previous value released")
	object.Release(&first)

	k2 := mustString(t, "k2")
	require.NoError(t, keyvalue.SetKey(kv, k2))
	object.Release(&k2)

	js, err := object.ToJSON(kv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"k2","value":2}`, string(js))

	object.Release(&second)
	object.Release(&kv)
	assert.Equal(t, before, object.Outstanding())
}

func TestPair_EqualityAndOrder(t *testing.T) {
	pairs := make([]*object.Object, 0, 4)
	mk := func(k string, v uint64) *object.Object {
		ko, vo := mustString(t, k), mustUint(t, v)
		kv, err := keyvalue.New(ko, vo)
		require.NoError(t, err)
		object.Release(&ko)
		object.Release(&vo)
		pairs = append(pairs, kv)
		return kv
	}
	defer func() {
		for i := range pairs {
			object.Release(&pairs[i])
		}
	}()

	a1, a1b, a2, b1 := mk("a", 1), mk("a", 1), mk("a", 2), mk("b", 1)

	eq, err := object.Equals(a1, a1b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = object.Equals(a1, a2)
	require.NoError(t, err)
	assert.False(t, eq, "value participates in equality")

	same, err := keyvalue.EqualKeys(a1, a2)
	require.NoError(t, err)
	assert.True(t, same)

	cmp, err := object.Compare(a1, b1)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	ha, _ := object.HashCode(a1)
	hb, _ := object.HashCode(a1b)
	assert.Equal(t, ha, hb)
}

func TestPair_DeepCopy(t *testing.T) {
	before := object.Outstanding()

	k, v := mustString(t, "k"), mustUint(t, 7)
	kv, err := keyvalue.New(k, v)
	require.NoError(t, err)
	object.Release(&k)

	cp, err := object.Copy(kv)
	require.NoError(t, err)

	cv, err := keyvalue.Value(cp)
	require.NoError(t, err)
	require.NotSame(t, v, cv)

	c, err := boxed.Counter(v)
	require.NoError(t, err)
	c.Store(8)
	eq, err := object.Equals(kv, cp)
	require.NoError(t, err)
	assert.False(t, eq, "copy does not share the value")

	assert.Contains(t, object.Display(cp, 0), "KeyValue {")

	object.Release(&v)
	object.Release(&kv)
	object.Release(&cp)
	assert.Equal(t, before, object.Outstanding())
}

func TestPair_MixedKeyTypesAreIncomparable(t *testing.T) {
	mk := func(k *object.Object) *object.Object {
		kv, err := keyvalue.New(k, nil)
		require.NoError(t, err)
		object.Release(&k)
		return kv
	}
	a := mk(mustString(t, "a"))
	defer object.Release(&a)
	n := mk(mustUint(t, 5))
	defer object.Release(&n)
	b := mk(mustString(t, "b"))
	defer object.Release(&b)

	_, err := object.Compare(a, n)
	assert.ErrorIs(t, err, api.ErrTypeMismatch)
	_, err = object.Compare(n, b)
	assert.ErrorIs(t, err, api.ErrTypeMismatch)

	c, err := object.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	eq, err := object.Equals(a, n)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestPair_KeyWithoutHashSlot(t *testing.T) {
	bare := object.NewType[int]("Bare", object.Capabilities[int]{})
	k, err := object.Create(bare, 7)
	require.NoError(t, err)
	kv, err := keyvalue.New(k, nil)
	require.NoError(t, err)
	object.Release(&k)
	defer object.Release(&kv)

	h, err := object.HashCode(kv)
	require.NoError(t, err)
	assert.Zero(t, h)

	_, err = object.Compare(kv, kv)
	require.NoError(t, err, "a pair compares equal to itself")
}
