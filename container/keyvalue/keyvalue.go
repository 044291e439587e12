// File: container/keyvalue/keyvalue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package keyvalue implements a managed pair of managed objects. The pair
// holds one reference to its key and, when present, one to its value;
// finalizing the pair releases both.

package keyvalue

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/object"
)

type pair struct {
	mu    sync.RWMutex
	key   *object.Object
	value *object.Object
}

func (p *pair) load() (key, value *object.Object) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.key, p.value
}

// Type is the capability table of key/value pairs. Equality covers key and
// value; ordering and hashing use the key only. Comparing pairs whose keys
// have different types fails with api.ErrTypeMismatch.
var Type = object.NewType[*pair]("KeyValue", object.Capabilities[*pair]{
	Finalize: func(p *pair) {
		p.mu.Lock()
		defer p.mu.Unlock()
		object.Release(&p.key)
		object.Release(&p.value)
	},
	Copy:     copyPair,
	Display:  display,
	ToJSON:   toJSON,
	Equals:   equals,
	Compare:  compare,
	HashCode: hashCode,
})

// New creates a pair. key is required; value may be nil. Both are acquired,
// so the caller keeps its own references.
func New(key, value *object.Object) (*object.Object, error) {
	if key == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "keyvalue: nil key")
	}
	p := &pair{key: object.Acquire(key)}
	if value != nil {
		p.value = object.Acquire(value)
	}
	kv, err := object.Create(Type, p)
	if err != nil {
		object.Release(&p.key)
		object.Release(&p.value)
		return nil, err
	}
	return kv, nil
}

func payload(kv *object.Object) (*pair, error) {
	p, ok := object.Value[*pair](kv)
	if !ok || p == nil {
		return nil, api.NewError(api.ErrCodeTypeMismatch, "keyvalue: not a KeyValue object")
	}
	return p, nil
}

// Key returns the key, borrowed: acquire it to keep it past the pair.
func Key(kv *object.Object) (*object.Object, error) {
	p, err := payload(kv)
	if err != nil {
		return nil, err
	}
	k, _ := p.load()
	return k, nil
}

// Value returns the value (possibly nil), borrowed like Key.
func Value(kv *object.Object) (*object.Object, error) {
	p, err := payload(kv)
	if err != nil {
		return nil, err
	}
	_, v := p.load()
	return v, nil
}

// SetKey acquires key and releases the previous one.
func SetKey(kv, key *object.Object) error {
	if key == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "keyvalue: nil key")
	}
	p, err := payload(kv)
	if err != nil {
		return err
	}
	p.mu.Lock()
	old := p.key
	p.key = object.Acquire(key)
	p.mu.Unlock()
	object.Release(&old)
	return nil
}

// SetValue acquires value (which may be nil) and releases the previous one.
func SetValue(kv, value *object.Object) error {
	p, err := payload(kv)
	if err != nil {
		return err
	}
	p.mu.Lock()
	old := p.value
	p.value = nil
	if value != nil {
		p.value = object.Acquire(value)
	}
	p.mu.Unlock()
	object.Release(&old)
	return nil
}

// EqualKeys reports whether two pairs have equal keys.
func EqualKeys(a, b *object.Object) (bool, error) {
	ka, err := Key(a)
	if err != nil {
		return false, err
	}
	kb, err := Key(b)
	if err != nil {
		return false, err
	}
	return object.Equals(ka, kb)
}

func copyPair(p *pair) (*pair, error) {
	k, v := p.load()
	nk, err := object.Copy(k)
	if err != nil {
		return nil, err
	}
	out := &pair{key: nk}
	if v != nil {
		if out.value, err = object.Copy(v); err != nil {
			object.Release(&out.key)
			return nil, err
		}
	}
	return out, nil
}

// Keys or values without an Equals slot compare unequal.
func equals(a, b *pair) bool {
	ak, av := a.load()
	bk, bv := b.load()
	if ok, err := object.Equals(ak, bk); err != nil || !ok {
		return false
	}
	ok, err := object.Equals(av, bv)
	return err == nil && ok
}

// Pairs order by key; keys that cannot be compared make the pairs
// incomparable.
func compare(a, b *pair) (int, error) {
	ak, _ := a.load()
	bk, _ := b.load()
	return object.Compare(ak, bk)
}

// Keys without a HashCode slot hash to 0. That stays consistent with
// Equals, which needs equal keys.
func hashCode(p *pair) uint32 {
	k, _ := p.load()
	h, _ := object.HashCode(k)
	return h
}

func display(p *pair, indent int) string {
	k, v := p.load()
	return fmt.Sprintf("%sKeyValue {\n%s\n%s\n%s}",
		object.Indent(indent),
		object.Display(k, indent+1),
		object.Display(v, indent+1),
		object.Indent(indent))
}

func toJSON(p *pair) ([]byte, error) {
	k, v := p.load()
	kj, err := object.ToJSON(k)
	if err != nil {
		return nil, err
	}
	vj, err := object.ToJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"key":`)
	buf.Write(kj)
	buf.WriteString(`,"value":`)
	buf.Write(vj)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
