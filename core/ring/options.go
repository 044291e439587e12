// File: core/ring/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"github.com/google/uuid"
	"github.com/lthibault/log"
)

// Option configures a ring at construction.
type Option func(*options)

type options struct {
	log  log.Logger
	name string
}

// WithLogger sets the logger for lifecycle and invariant events.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithName labels the ring in logs and debug probes. Defaults to a random
// UUID.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		log:  log.New(log.WithLevel(log.ErrorLevel)),
		name: uuid.NewString(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
