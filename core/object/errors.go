// File: core/object/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package object

import (
	"fmt"

	"github.com/momentics/hioload-core/api"
)

// InvariantError is the panic value raised on reference-count misuse.
// It is never returned as an ordinary error.
type InvariantError struct {
	Op     string
	Type   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("object: invariant violated: %s(%s): %s", e.Op, e.Type, e.Detail)
}

func fatal(op string, o *Object, detail string) {
	name := "<nil>"
	if o != nil {
		name = o.typ.name
	}
	err := &InvariantError{Op: op, Type: name, Detail: detail}
	Logger().
		WithField("op", op).
		WithField("type", name).
		Error(detail)
	panic(err)
}

func unsupported(op string, t *Type) error {
	return api.NewError(api.ErrCodeNotSupported, "object: "+op+" not supported").
		WithContext("type", t.name)
}
