// Package api
// Author: momentics@gmail.com
//
// Atomic scalar contract shared by the lock-free and mutex backends.

package api

// Scalar is a fixed-width unsigned integer with atomic read-modify-write.
// No caller ever observes a torn value.
type Scalar[T any] interface {
	// Load returns the current value.
	Load() T
	// Store replaces the current value.
	Store(v T)
	// Add adds delta and returns the new value (modular).
	Add(delta T) T
	// Subtract subtracts delta and returns the new value (modular).
	Subtract(delta T) T
	// CompareAndSwap installs newValue iff the current value is expected.
	CompareAndSwap(expected, newValue T) bool
}
