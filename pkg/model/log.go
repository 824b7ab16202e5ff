package model

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

// SetLogger sets the logger used for construction-time warnings such as
// a key whose element kind disagrees with the reference target. Passing
// nil restores the default logger.
func SetLogger(l *log.Logger) {
	logger.Store(l)
}

func warnf(msg string, keyvals ...any) {
	l := logger.Load()
	if l == nil {
		l = log.Default()
	}
	l.Warn(msg, keyvals...)
}
