// File: internal/stress/stress.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package stress drives a ring with P producers and C consumers passing
// uniquely tagged managed objects, and verifies that every tag arrives
// exactly once and nothing leaks.
package stress

import (
	"context"
	"fmt"
	"time"

	"github.com/lthibault/log"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-core/api"
	"github.com/momentics/hioload-core/core/atomic"
	"github.com/momentics/hioload-core/core/object"
	"github.com/momentics/hioload-core/core/object/boxed"
	"github.com/momentics/hioload-core/core/ring"
)

// Config describes one run.
type Config struct {
	Producers int
	Consumers int
	Items     int // per producer
	Capacity  int
	Backend   ring.Backend
	Logger    log.Logger
	Debug     api.Debug // optional; receives the ring's probes
}

// Result summarizes a completed run.
type Result struct {
	Total    int
	Elapsed  time.Duration
	Stats    ring.Stats
	Leaked   int64 // objects created by the run and never finalized
	Backend  ring.Backend
	Capacity int
}

// Run executes the scenario. It fails on a lost or duplicated tag.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Producers < 1 || cfg.Consumers < 1 || cfg.Items < 1 {
		return Result{}, api.NewError(api.ErrCodeInvalidArgument, "stress: producers, consumers and items must be positive")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.WithLevel(log.ErrorLevel))
	}
	if cfg.Backend == "" {
		cfg.Backend = ring.BackendLockFree
	}

	r, err := ring.Open[*object.Object](cfg.Backend, cfg.Capacity, object.Release,
		ring.WithLogger(cfg.Logger),
		ring.WithName("stress"))
	if err != nil {
		return Result{}, err
	}
	exp, exposable := r.(interface {
		Expose(api.Debug)
		Stats() ring.Stats
	})
	if exposable && cfg.Debug != nil {
		exp.Expose(cfg.Debug)
	}

	total := cfg.Producers * cfg.Items
	seen := make([]atomic.Counter32, total)
	var claimed atomic.Counter64
	before := object.Stats()
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Producers; p++ {
		base := p * cfg.Items
		g.Go(func() error {
			for i := 0; i < cfg.Items; i++ {
				o, err := boxed.NewUint64(uint64(base + i))
				if err != nil {
					return err
				}
				if err := r.PutContext(ctx, o); err != nil {
					object.Release(&o)
					return err
				}
			}
			return nil
		})
	}
	for c := 0; c < cfg.Consumers; c++ {
		g.Go(func() error {
			for claimed.Add(1) <= uint64(total) {
				o, err := r.GetContext(ctx)
				if err != nil {
					return err
				}
				tag, err := boxed.Uint64Value(o)
				object.Release(&o)
				if err != nil {
					return err
				}
				if tag >= uint64(total) {
					return fmt.Errorf("stress: tag %d out of range", tag)
				}
				if seen[tag].Add(1) != 1 {
					return fmt.Errorf("stress: tag %d delivered twice", tag)
				}
			}
			return nil
		})
	}
	runErr := g.Wait()
	elapsed := time.Since(start)

	var stats ring.Stats
	if exposable {
		stats = exp.Stats()
	}
	r.Release()

	if runErr != nil {
		return Result{}, runErr
	}
	for tag := range seen {
		if seen[tag].Load() != 1 {
			return Result{}, fmt.Errorf("stress: tag %d lost", tag)
		}
	}

	after := object.Stats()
	leaked := int64(after.Created-before.Created) - int64(after.Finalized-before.Finalized)
	res := Result{
		Total:    total,
		Elapsed:  elapsed,
		Stats:    stats,
		Leaked:   leaked,
		Backend:  cfg.Backend,
		Capacity: cfg.Capacity,
	}
	cfg.Logger.
		WithField("total", total).
		WithField("elapsed", elapsed).
		WithField("blocked_puts", stats.BlockedPuts).
		WithField("blocked_gets", stats.BlockedGets).
		Debug("stress run complete")
	return res, nil
}
