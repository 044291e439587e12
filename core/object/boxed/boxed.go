// File: core/object/boxed/boxed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package boxed provides ready-made managed types for scalar payloads:
// an atomic 64-bit counter and an immutable string.

package boxed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
	"github.com/momentics/hioload-core/core/object"
)

// Uint64Type is the capability table of managed atomic counters.
var Uint64Type = object.NewType[*atomic.Counter64]("Uint64", object.Capabilities[*atomic.Counter64]{
	Copy: func(c *atomic.Counter64) (*atomic.Counter64, error) {
		return atomic.NewCounter64(c.Load()), nil
	},
	Display: func(c *atomic.Counter64, indent int) string {
		return fmt.Sprintf("%sUint64@%p { %d }", object.Indent(indent), c, c.Load())
	},
	ToJSON: func(c *atomic.Counter64) ([]byte, error) {
		return []byte(strconv.FormatUint(c.Load(), 10)), nil
	},
	Equals: func(a, b *atomic.Counter64) bool {
		return atomic.Equal[uint64](a, b)
	},
	Compare: func(a, b *atomic.Counter64) (int, error) {
		return atomic.Compare[uint64](a, b), nil
	},
	HashCode: func(c *atomic.Counter64) uint32 {
		return atomic.HashCode[uint64](c)
	},
})

// NewUint64 creates a managed counter holding v.
func NewUint64(v uint64) (*object.Object, error) {
	return object.Create(Uint64Type, atomic.NewCounter64(v))
}

// Counter returns the scalar behind a managed counter.
func Counter(o *object.Object) (*atomic.Counter64, error) {
	c, ok := object.Value[*atomic.Counter64](o)
	if !ok || c == nil {
		return nil, api.NewError(api.ErrCodeTypeMismatch, "boxed: not a Uint64 object")
	}
	return c, nil
}

// Uint64Value returns the current value of a managed counter.
func Uint64Value(o *object.Object) (uint64, error) {
	c, err := Counter(o)
	if err != nil {
		return 0, err
	}
	return c.Load(), nil
}

// StringType is the capability table of managed immutable strings.
var StringType = object.NewType[string]("String", object.Capabilities[string]{
	Copy: func(s string) (string, error) {
		return strings.Clone(s), nil
	},
	Display: func(s string, indent int) string {
		return fmt.Sprintf("%sString { %q }", object.Indent(indent), s)
	},
	ToJSON: func(s string) ([]byte, error) {
		return json.Marshal(s)
	},
	Equals: func(a, b string) bool {
		return a == b
	},
	Compare: func(a, b string) (int, error) {
		return strings.Compare(a, b), nil
	},
	HashCode: func(s string) uint32 {
		h := xxhash.Sum64String(s)
		return uint32(h) ^ uint32(h>>32)
	},
})

// NewString creates a managed string.
func NewString(s string) (*object.Object, error) {
	return object.Create(StringType, s)
}

// StringValue returns the payload of a managed string.
func StringValue(o *object.Object) (string, error) {
	s, ok := object.Value[string](o)
	if !ok {
		return "", api.NewError(api.ErrCodeTypeMismatch, "boxed: not a String object")
	}
	return s, nil
}
