// File: core/object/log.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package object

import (
	"sync/atomic"

	"github.com/lthibault/log"
)

// loggerBox keeps atomic.Value stores consistently typed.
type loggerBox struct{ log.Logger }

var logger atomic.Value

func init() {
	logger.Store(loggerBox{log.New(log.WithLevel(log.ErrorLevel))})
}

// SetLogger replaces the logger used to report invariant violations.
func SetLogger(l log.Logger) {
	if l != nil {
		logger.Store(loggerBox{l})
	}
}

// Logger returns the runtime logger.
func Logger() log.Logger {
	return logger.Load().(loggerBox).Logger
}
