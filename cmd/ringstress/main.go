// File: cmd/ringstress/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Command ringstress runs the N×M ring stress scenario with managed objects
// and reports throughput, blocking and leak counters.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lthibault/log"
	"github.com/urfave/cli/v2"

	"github.com/momentics/hioload-core/adapters"
	"github.com/momentics/hioload-core/control"
	"github.com/momentics/hioload-core/core/atomic"
	"github.com/momentics/hioload-core/core/object"
	"github.com/momentics/hioload-core/internal/logutil"
	"github.com/momentics/hioload-core/internal/stress"
)

var flags = []cli.Flag{
	&cli.IntFlag{
		Name:    "producers",
		Aliases: []string{"p"},
		Usage:   "number of producer goroutines",
		Value:   4,
	},
	&cli.IntFlag{
		Name:    "consumers",
		Aliases: []string{"c"},
		Usage:   "number of consumer goroutines",
		Value:   4,
	},
	&cli.IntFlag{
		Name:    "items",
		Aliases: []string{"n"},
		Usage:   "items enqueued by each producer",
		Value:   10000,
	},
	&cli.IntFlag{
		Name:  "capacity",
		Usage: "ring capacity",
		Value: 1024,
	},
	&cli.StringFlag{
		Name:        "backend",
		Usage:       "ring `backend`: lockfree or locked",
		DefaultText: "from config",
		EnvVars:     []string{"HIOLOAD_RING_BACKEND"},
	},
	&cli.PathFlag{
		Name:    "config",
		Usage:   "load settings from YAML `path`",
		EnvVars: []string{"HIOLOAD_CONFIG"},
	},
	// Logging
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "`format` logs as text, json or none",
		Value:   "text",
		EnvVars: []string{"HIOLOAD_LOGFMT"},
	},
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "set logging `level` to trace, debug, info, warn, error or fatal",
		Value:   "info",
		EnvVars: []string{"HIOLOAD_LOGLVL"},
	},
	&cli.BoolFlag{
		Name:    "prettyprint",
		Aliases: []string{"pp"},
		Usage:   "pretty-print JSON output",
		Hidden:  true,
	},
	&cli.BoolFlag{
		Name:  "dump",
		Usage: "print every debug probe after the run",
	},
	// Statsd
	&cli.StringFlag{
		Name:        "statsd",
		Usage:       "send metrics to udp `host:port`",
		EnvVars:     []string{"HIOLOAD_STATSD"},
		DefaultText: "disabled",
	},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "ringstress",
		Usage:     "stress the N×M ring with reference-counted objects",
		UsageText: "ringstress [options]",
		Flags:     flags,
		Action:    run,
	}
}

func run(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	logger := logutil.New(settings.Log, c.App.ErrWriter)
	object.SetLogger(logger)

	ctrl := adapters.NewControlAdapter()
	if err := ctrl.SetConfig(settings.Map()); err != nil {
		return err
	}

	reporter := control.NewReporter(settings.Statsd, ctrl.Metrics(), ctrl.Debug(), logger)
	defer reporter.Close()
	if settings.Statsd.Address != "" {
		ctx, cancel := context.WithCancel(c.Context)
		done := make(chan struct{})
		go func() {
			defer close(done)
			reporter.Run(ctx, settings.Statsd.FlushPeriod)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	logger.WithField("atomics", atomic.Backend).
		WithField("ring", settings.RingBackend).
		WithField("wide_cas", control.WideCAS()).
		Info("starting stress run")

	res, err := stress.Run(c.Context, stress.Config{
		Producers: c.Int("producers"),
		Consumers: c.Int("consumers"),
		Items:     c.Int("items"),
		Capacity:  c.Int("capacity"),
		Backend:   ctrl.RingBackend(),
		Logger:    logger,
		Debug:     ctrl.Debug(),
	})
	if err != nil {
		return err
	}
	ctrl.Metrics().Add("ringstress.runs", 1)
	ctrl.Metrics().Add("ringstress.items", uint64(res.Total))
	reporter.Flush()

	fmt.Fprintf(c.App.Writer, "backend=%s atomics=%s capacity=%d items=%d elapsed=%s rate=%.0f/s\n",
		res.Backend, atomic.Backend, res.Capacity, res.Total, res.Elapsed,
		float64(res.Total)/res.Elapsed.Seconds())
	fmt.Fprintf(c.App.Writer, "blocked_puts=%d blocked_gets=%d leaked=%d\n",
		res.Stats.BlockedPuts, res.Stats.BlockedGets, res.Leaked)

	if c.Bool("dump") {
		state := ctrl.Debug().DumpState()
		for _, name := range ctrl.Debug().Names() {
			fmt.Fprintf(c.App.Writer, "%s=%v\n", name, state[name])
		}
	}

	if res.Leaked != 0 {
		return cli.Exit(fmt.Sprintf("leaked %d objects", res.Leaked), 1)
	}
	return nil
}

func loadSettings(c *cli.Context) (control.Settings, error) {
	settings := control.DefaultSettings()
	if path := c.Path("config"); path != "" {
		s, err := control.LoadSettings(path)
		if err != nil {
			return control.Settings{}, err
		}
		settings = s
	}
	if c.IsSet("backend") {
		settings.RingBackend = c.String("backend")
	}
	if c.IsSet("statsd") {
		settings.Statsd.Address = c.String("statsd")
	}
	if c.IsSet("loglvl") || settings.Log.Level == "" {
		settings.Log.Level = c.String("loglvl")
	}
	if c.IsSet("logfmt") || settings.Log.Format == "" {
		settings.Log.Format = c.String("logfmt")
	}
	if c.IsSet("prettyprint") {
		settings.Log.Pretty = c.Bool("prettyprint")
	}
	return settings, settings.Validate()
}
