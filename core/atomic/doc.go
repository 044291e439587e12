// File: core/atomic/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package atomic implements fixed-width unsigned scalars with atomic
// add, subtract and compare-and-swap.
//
// Two interchangeable backends share one contract (api.Scalar):
//   - Uint32/Uint64 map every operation onto a single sync/atomic instruction.
//   - Locked[T] guards the value with a per-instance mutex.
//
// Counter32/Counter64 are the scalars the rest of the runtime embeds. They
// alias the lock-free types unless the module is built with the
// `hioload_noatomics` tag, in which case they alias the mutex backend.
// Selection is resolved at compile time; no operation branches on it.
//
// Arithmetic wraps modulo 2^width, as unsigned Go arithmetic does.
package atomic
