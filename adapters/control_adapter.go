// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control on top of the control package,
// with live-reloadable runtime keys applied to the object runtime.

package adapters

import (
	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/control"
	"github.com/momentics/hioload-core/core/object"
	"github.com/momentics/hioload-core/core/ring"
)

var _ api.Control = (*ControlAdapter)(nil)

type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// NewControlAdapter returns a control plane with platform and object
// runtime probes registered.
func NewControlAdapter() *ControlAdapter {
	adapter := &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	adapter.debug.RegisterProbe("object.outstanding", func() any { return object.Outstanding() })
	adapter.debug.RegisterProbe("object.created", func() any { return object.Stats().Created })
	adapter.debug.RegisterProbe("object.finalized", func() any { return object.Stats().Finalized })
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// SetConfig checks the keys it understands, applies the live ones and
// stores everything. "object.alloc_limit" takes effect immediately;
// "ring.backend" only affects rings opened afterwards.
func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	limit, hasLimit := cfg["object.alloc_limit"]
	var n uint64
	if hasLimit {
		var ok bool
		if n, ok = toUint64(limit); !ok {
			return api.NewError(api.ErrCodeInvalidArgument, "control: object.alloc_limit must be a non-negative integer").
				WithContext("value", limit)
		}
	}
	if b, ok := cfg["ring.backend"]; ok {
		switch ring.Backend(toString(b)) {
		case "", ring.BackendLockFree, ring.BackendLocked:
		default:
			return api.NewError(api.ErrCodeInvalidArgument, "control: unknown ring.backend").
				WithContext("value", b)
		}
	}

	if hasLimit {
		object.SetAllocationLimit(n)
	}
	c.config.SetConfig(cfg)
	return nil
}

// RingBackend returns the configured ring backend.
func (c *ControlAdapter) RingBackend() ring.Backend {
	b, _ := c.config.String("ring.backend")
	return ring.Backend(b)
}

// Stats merges metrics with current probe values under "debug.".
func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Debug exposes the probe set, e.g. for ring.Expose.
func (c *ControlAdapter) Debug() *control.DebugProbes { return c.debug }

// Metrics exposes the registry for a reporter.
func (c *ControlAdapter) Metrics() *control.MetricsRegistry { return c.metrics }

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case int:
		return uint64(n), n >= 0
	case int64:
		return uint64(n), n >= 0
	case int32:
		return uint64(n), n >= 0
	}
	return 0, false
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
