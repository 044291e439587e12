// File: core/object/dispatch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Polymorphic operations dispatched through the capability table.
// The runtime adds no locking around dispatch.

package object

import (
	"fmt"
	"strings"

	"github.com/momentics/hioload-core/api"
)

// Equals reports whether a and b are logically equal.
// Two nil handles are equal; nil never equals a live object; objects of
// different types are never equal.
func Equals(a, b *Object) (bool, error) {
	switch {
	case a == nil && b == nil:
		return true, nil
	case a == nil || b == nil:
		return false, nil
	}
	if a.typ.equals == nil {
		return false, unsupported("Equals", a.typ)
	}
	if a == b {
		return true, nil
	}
	if a.typ != b.typ {
		return false, nil
	}
	return a.typ.equals(a, b), nil
}

// Compare orders a and b, returning -1, 0 or 1.
// nil sorts before every live object. Comparing objects of different types
// fails with api.ErrTypeMismatch.
func Compare(a, b *Object) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}
	if a.typ.compare == nil {
		return 0, unsupported("Compare", a.typ)
	}
	if a.typ != b.typ {
		return 0, api.NewError(api.ErrCodeTypeMismatch, "object: Compare across types").
			WithContext("left", a.typ.name).
			WithContext("right", b.typ.name)
	}
	if a == b {
		return 0, nil
	}
	c, err := a.typ.compare(a, b)
	if err != nil {
		return 0, err
	}
	return sign(c), nil
}

// HashCode returns the hash of o. Objects that are Equals hash equally,
// provided the type author honoured that contract.
func HashCode(o *Object) (uint32, error) {
	if o == nil {
		return 0, nil
	}
	if o.typ.hashCode == nil {
		return 0, unsupported("HashCode", o.typ)
	}
	return o.typ.hashCode(o), nil
}

// Copy returns a new object of the same type holding a deep copy of the
// payload. The copy starts with one reference.
func Copy(o *Object) (*Object, error) {
	if o == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "object: Copy of nil handle")
	}
	if o.typ.copy == nil {
		return nil, unsupported("Copy", o.typ)
	}
	payload, err := o.typ.copy(o)
	if err != nil {
		return nil, fmt.Errorf("object: copy %s: %w", o.typ.name, err)
	}
	return Create(o.typ, payload)
}

// ToJSON encodes o through its type's ToJSON slot. nil encodes as null.
func ToJSON(o *Object) ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	if o.typ.toJSON == nil {
		return nil, unsupported("ToJSON", o.typ)
	}
	return o.typ.toJSON(o)
}

// Display renders o for diagnostics. Types without a Display slot render
// as "<type>@<address>".
func Display(o *Object, indent int) string {
	if o == nil {
		return Indent(indent) + "<nil>"
	}
	if o.typ.display != nil {
		return o.typ.display(o, indent)
	}
	return fmt.Sprintf("%s%s@%p", Indent(indent), o.typ.name, o)
}

// String implements fmt.Stringer via Display.
func (o *Object) String() string { return Display(o, 0) }

// Indent returns the left padding for an indentation level.
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("  ", level)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
