// File: core/ring/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "fmt"

// InvariantError is the panic value raised on ring misuse, such as
// releasing a ring twice.
type InvariantError struct {
	Op     string
	Ring   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ring: invariant violated: %s(%s): %s", e.Op, e.Ring, e.Detail)
}
