// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named probes over live runtime state: rings, the object runtime and the
// platform. Probes are plain closures evaluated on demand.

package control

import (
	"sort"
	"strings"
	"sync"

	"github.com/momentics/hioload-core/api"
)

var _ api.Debug = (*DebugProbes)(nil)

// DebugProbes is a concurrent registry of probes. Probes run without the
// registry lock held, so a probe may itself register or unregister probes.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]func() any)}
}

// RegisterProbe adds fn under name, replacing any earlier probe.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	if fn == nil {
		return
	}
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

func (dp *DebugProbes) UnregisterProbe(name string) {
	dp.mu.Lock()
	delete(dp.probes, name)
	dp.mu.Unlock()
}

// Names returns the registered probe names in order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	dp.mu.RUnlock()
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe.
func (dp *DebugProbes) DumpState() map[string]any {
	return dp.DumpPrefix("")
}

// DumpPrefix evaluates the probes whose names start with prefix,
// e.g. "ring.stress.".
func (dp *DebugProbes) DumpPrefix(prefix string) map[string]any {
	dp.mu.RLock()
	fns := make(map[string]func() any, len(dp.probes))
	for k, fn := range dp.probes {
		if strings.HasPrefix(k, prefix) {
			fns[k] = fn
		}
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for k, fn := range fns {
		out[k] = fn()
	}
	return out
}
