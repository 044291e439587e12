// control/reporter.go
// Author: momentics <momentics@gmail.com>
//
// Pushes numeric metrics to statsd as gauges.

package control

import (
	"context"
	"time"

	"github.com/lthibault/log"
	"gopkg.in/alexcesaro/statsd.v2"
)

// Reporter publishes a MetricsRegistry to statsd.
type Reporter struct {
	client *statsd.Client
	reg    *MetricsRegistry
	probes *DebugProbes
	log    log.Logger
}

// NewReporter builds a reporter. A failing or empty statsd address yields a
// muted client so callers never need to branch on metrics being enabled.
func NewReporter(s StatsdSettings, reg *MetricsRegistry, probes *DebugProbes, l log.Logger) *Reporter {
	period := s.FlushPeriod
	if period <= 0 {
		period = time.Second
	}
	c, err := statsd.New(
		statsd.Address(s.Address),
		statsd.Mute(s.Address == ""),
		statsd.Prefix(s.Prefix),
		statsd.FlushPeriod(period),
		statsd.ErrorHandler(func(err error) {
			l.WithError(err).
				WithField("statsd", s.Address).
				Warn("failed to send metrics")
		}))
	if err != nil {
		l.WithError(err).Warn("setup failed for statsd metrics")
	}
	return &Reporter{client: c, reg: reg, probes: probes, log: l}
}

// Flush samples the probes and sends every numeric metric as a gauge.
// Returns the number of gauges sent.
func (r *Reporter) Flush() int {
	if r.probes != nil {
		Sample(r.reg, r.probes)
	}
	n := 0
	for k, v := range r.reg.GetSnapshot() {
		if !numeric(v) {
			continue
		}
		r.client.Gauge(k, v)
		n++
	}
	r.client.Flush()
	return n
}

// Run flushes every interval until ctx is done, then flushes once more.
// The client stays open; Close it when done.
func (r *Reporter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Flush()
			return
		case <-t.C:
			r.Flush()
		}
	}
}

// Close flushes and closes the statsd client.
func (r *Reporter) Close() {
	r.client.Close()
}

func numeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
