// File: core/object/type.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Capability tables.

package object

import "fmt"

// Capabilities is the typed set of optional slots a type author supplies.
// Every slot may be nil. Implementations must keep Equals and HashCode
// consistent: equal values hash equally.
type Capabilities[T any] struct {
	// Finalize releases resources held by the payload. Runs exactly once,
	// when the last reference is released.
	Finalize func(v T)
	// Copy returns a deep copy of the payload.
	Copy func(v T) (T, error)
	// Display renders the payload at the given indentation level.
	Display func(v T, indent int) string
	// ToJSON encodes the payload.
	ToJSON func(v T) ([]byte, error)
	// Equals reports logical equality.
	Equals func(a, b T) bool
	// Compare returns a negative, zero or positive total order. An error
	// means a and b are not mutually comparable and is returned unchanged by
	// object.Compare.
	Compare func(a, b T) (int, error)
	// HashCode returns a hash consistent with Equals.
	HashCode func(v T) uint32
}

// Type is the immutable capability table shared by every instance of a
// managed type. Objects point at their Type but never own it.
type Type struct {
	name   string
	accept func(payload any) bool

	finalize func(o *Object)
	copy     func(o *Object) (any, error)
	display  func(o *Object, indent int) string
	toJSON   func(o *Object) ([]byte, error)
	equals   func(a, b *Object) bool
	compare  func(a, b *Object) (int, error)
	hashCode func(o *Object) uint32
}

// NewType builds a capability table for payloads of type T.
// The returned Type is safe for unsynchronized concurrent use.
func NewType[T any](name string, caps Capabilities[T]) *Type {
	t := &Type{
		name: name,
		accept: func(payload any) bool {
			_, ok := payload.(T)
			return ok
		},
	}
	if fn := caps.Finalize; fn != nil {
		t.finalize = func(o *Object) { fn(as[T](o.payload)) }
	}
	if fn := caps.Copy; fn != nil {
		t.copy = func(o *Object) (any, error) { return fn(as[T](o.payload)) }
	}
	if fn := caps.Display; fn != nil {
		t.display = func(o *Object, indent int) string { return fn(as[T](o.payload), indent) }
	}
	if fn := caps.ToJSON; fn != nil {
		t.toJSON = func(o *Object) ([]byte, error) { return fn(as[T](o.payload)) }
	}
	if fn := caps.Equals; fn != nil {
		t.equals = func(a, b *Object) bool { return fn(as[T](a.payload), as[T](b.payload)) }
	}
	if fn := caps.Compare; fn != nil {
		t.compare = func(a, b *Object) (int, error) { return fn(as[T](a.payload), as[T](b.payload)) }
	}
	if fn := caps.HashCode; fn != nil {
		t.hashCode = func(o *Object) uint32 { return fn(as[T](o.payload)) }
	}
	return t
}

// Name returns the type name used in diagnostics.
func (t *Type) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Type) String() string { return fmt.Sprintf("object.Type(%s)", t.name) }

func as[T any](payload any) T {
	v, _ := payload.(T)
	return v
}
