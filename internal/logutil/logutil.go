// File: internal/logutil/logutil.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package logutil builds loggers from runtime settings.
package logutil

import (
	"io"

	"github.com/lthibault/log"
	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-core/control"
)

// New returns a logger configured by s, writing to w.
func New(s control.LogSettings, w io.Writer) log.Logger {
	return log.New(
		WithLevel(s.Level, s.Format),
		WithFormat(s.Format, s.Pretty),
		log.WithWriter(w))
}

// WithLevel returns a log.Option that configures a logger's level.
// Format "none" silences everything below fatal.
func WithLevel(lvl, format string) (opt log.Option) {
	var level = log.FatalLevel
	defer func() {
		opt = log.WithLevel(level)
	}()

	if format == "none" {
		return
	}

	switch lvl {
	case "trace", "t":
		level = log.TraceLevel
	case "debug", "d":
		level = log.DebugLevel
	case "info", "i":
		level = log.InfoLevel
	case "warn", "warning", "w":
		level = log.WarnLevel
	case "error", "err", "e":
		level = log.ErrorLevel
	case "fatal", "f":
		level = log.FatalLevel
	default:
		level = log.InfoLevel
	}

	return
}

// WithFormat returns an option that configures a logger's format.
func WithFormat(format string, pretty bool) log.Option {
	var fmt logrus.Formatter

	switch format {
	case "json":
		fmt = &logrus.JSONFormatter{PrettyPrint: pretty}
	default:
		fmt = new(logrus.TextFormatter)
	}

	return log.WithFormatter(fmt)
}
