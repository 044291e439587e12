// File: core/ring/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "github.com/momentics/hioload-core/api"

// Stats is a point-in-time view of ring activity.
type Stats struct {
	Len         int
	Cap         int
	Puts        uint64
	Gets        uint64
	BlockedPuts uint64 // Put calls that had to wait at least once
	BlockedGets uint64 // Get calls that had to wait at least once
	Drained     uint64 // items handed to the destroyer by Release
}

// Stats returns current counters.
func (b *base[T, S]) Stats() Stats {
	return Stats{
		Len:         b.Len(),
		Cap:         b.capacity,
		Puts:        b.counters.puts.Load(),
		Gets:        b.counters.gets.Load(),
		BlockedPuts: b.counters.blockedPuts.Load(),
		BlockedGets: b.counters.blockedGets.Load(),
		Drained:     b.counters.drained.Load(),
	}
}

// Expose registers the ring's counters as probes named "ring.<name>.*".
// Release removes them again. Call before the ring is shared.
func (b *base[T, S]) Expose(d api.Debug) {
	p := "ring." + b.name + "."
	d.RegisterProbe(p+"len", func() any { return b.Len() })
	d.RegisterProbe(p+"cap", func() any { return b.capacity })
	d.RegisterProbe(p+"puts", func() any { return b.counters.puts.Load() })
	d.RegisterProbe(p+"gets", func() any { return b.counters.gets.Load() })
	d.RegisterProbe(p+"blocked_puts", func() any { return b.counters.blockedPuts.Load() })
	d.RegisterProbe(p+"blocked_gets", func() any { return b.counters.blockedGets.Load() })
	b.exposed = d
}

func unexpose(d api.Debug, name string) {
	p := "ring." + name + "."
	for _, k := range []string{"len", "cap", "puts", "gets", "blocked_puts", "blocked_gets"} {
		d.UnregisterProbe(p + k)
	}
}
