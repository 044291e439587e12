// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-core.
//
// Provides concurrent-safe state handling primitives including:
//   - Typed Settings loaded from YAML and mirrored into a ConfigStore
//   - Snapshot config reads with reload listeners
//   - A metrics registry fed from debug probes
//   - Platform probes (CPU features relevant to the atomic backends)
//   - A statsd reporter pushing numeric metrics as gauges
package control
