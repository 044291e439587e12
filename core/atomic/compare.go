// File: core/atomic/compare.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomic

import "github.com/momentics/hioload-core/api"

// Equal reports whether two scalars currently hold the same value.
func Equal[T Unsigned](a, b api.Scalar[T]) bool {
	return a.Load() == b.Load()
}

// Compare orders two scalars by their current values, returning -1, 0 or 1.
func Compare[T Unsigned](a, b api.Scalar[T]) int {
	x, y := a.Load(), b.Load()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// HashCode folds the current value of s into 32 bits.
func HashCode[T Unsigned](s api.Scalar[T]) uint32 {
	v := uint64(s.Load())
	return uint32(v) ^ uint32(v>>32)
}
