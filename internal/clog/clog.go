// Package clog is a small leveled logging facade for the print server,
// adapted from go-iecp5's clog package: a LogProvider interface behind a
// thin wrapper, except the single enable/disable bit is generalized to
// the four verbosity levels spec.md §3 specifies for Runtime attributes
// (silent, error, info, debug).
package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// Level is a verbosity level, ordered from quietest to loudest.
type Level int32

const (
	Silent Level = iota
	Error
	Info
	Debug
)

// LogProvider is the logging backend. The default implementation prints
// to stderr with a "copris: " prefix and no date or time flags.
type LogProvider interface {
	Errorf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// Logger gates calls to a LogProvider by the configured verbosity level.
type Logger struct {
	provider LogProvider
	level    int32
}

// New creates a logger at the given level, using the default provider.
func New(level Level) *Logger {
	return &Logger{
		provider: defaultLogger{log.New(os.Stderr, "copris: ", 0)},
		level:    int32(level),
	}
}

// SetLevel changes the verbosity level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreInt32(&l.level, int32(level))
}

// SetProvider overrides the logging backend.
func (l *Logger) SetProvider(p LogProvider) {
	if p != nil {
		l.provider = p
	}
}

func (l *Logger) enabled(level Level) bool {
	return atomic.LoadInt32(&l.level) >= int32(level)
}

// Error logs a message visible at verbosity Error and above.
func (l *Logger) Error(format string, v ...interface{}) {
	if l.enabled(Error) {
		l.provider.Errorf(format, v...)
	}
}

// Info logs a message visible at verbosity Info and above.
func (l *Logger) Info(format string, v ...interface{}) {
	if l.enabled(Info) {
		l.provider.Infof(format, v...)
	}
}

// Debug logs a message visible only at verbosity Debug.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.enabled(Debug) {
		l.provider.Debugf(format, v...)
	}
}

type defaultLogger struct {
	*log.Logger
}

var _ LogProvider = (*defaultLogger)(nil)

func (d defaultLogger) Errorf(format string, v ...interface{}) {
	d.Printf("error: "+format, v...)
}

func (d defaultLogger) Infof(format string, v ...interface{}) {
	d.Printf("info: "+format, v...)
}

func (d defaultLogger) Debugf(format string, v ...interface{}) {
	d.Printf("debug: "+format, v...)
}
