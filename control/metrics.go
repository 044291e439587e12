// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Metrics registry: sampled gauges copied from probes plus monotonic
// counters kept on core/atomic scalars.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
)

// MetricsRegistry holds gauges (last value wins) and counters (Add only).
// A key is either a gauge or a counter; Set on a counter key replaces it
// with a gauge.
type MetricsRegistry struct {
	mu       sync.RWMutex
	gauges   map[string]any
	counters map[string]*atomic.Counter64
	updated  time.Time
}

func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		gauges:   make(map[string]any),
		counters: make(map[string]*atomic.Counter64),
	}
}

// Set records a gauge.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	delete(mr.counters, key)
	mr.gauges[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Add bumps a counter and returns its new value.
func (mr *MetricsRegistry) Add(key string, delta uint64) uint64 {
	mr.mu.RLock()
	c, ok := mr.counters[key]
	mr.mu.RUnlock()
	if !ok {
		mr.mu.Lock()
		if c, ok = mr.counters[key]; !ok {
			c = atomic.NewCounter64(0)
			mr.counters[key] = c
			delete(mr.gauges, key)
		}
		mr.mu.Unlock()
	}
	n := c.Add(delta)

	mr.mu.Lock()
	mr.updated = time.Now()
	mr.mu.Unlock()
	return n
}

// GetSnapshot returns gauges and current counter values in one map.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.gauges)+len(mr.counters))
	for k, v := range mr.gauges {
		out[k] = v
	}
	for k, c := range mr.counters {
		out[k] = c.Load()
	}
	return out
}

// Updated returns the time of the last Set or Add; zero if none.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// Sample copies every probe value into the registry as a gauge.
func Sample(mr *MetricsRegistry, d api.Debug) {
	for k, v := range d.DumpState() {
		mr.Set(k, v)
	}
}
