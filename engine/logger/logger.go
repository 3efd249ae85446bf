// Package logger provides the leveled logging interface used across the engine.
// Components accept a Logger through their builder options and fall back to a
// no-op logger when none is supplied.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is a leveled, printf-style logger.
type Logger interface {
	// DebugEnabled reports whether Debugf output is currently emitted.
	DebugEnabled() bool

	// SetDebug toggles Debugf output.
	SetDebug(enabled bool)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// defaultLogger writes Debug and Info to one stream and Warn and Error to another.
type defaultLogger struct {
	mu     *sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

var _ Logger = &defaultLogger{}

// NewDefaultLogger creates a Logger writing to stdout (debug, info) and stderr (warn, error).
//
// Parameters:
//   - prefix: tag prepended to every line as "[prefix]"; omitted when empty
//   - debug: whether Debugf output is enabled initially
//
// Returns:
//   - Logger: the configured logger
func NewDefaultLogger(prefix string, debug bool) Logger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

// NewWriterLogger creates a Logger over arbitrary writers. Tests use it to capture output.
//
// Parameters:
//   - prefix: tag prepended to every line as "[prefix]"; omitted when empty
//   - debug: whether Debugf output is enabled initially
//   - out: destination for debug and info lines
//   - errOut: destination for warn and error lines
//
// Returns:
//   - Logger: the configured logger
func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) Logger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &defaultLogger{
		mu:     &sync.Mutex{},
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *defaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *defaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *defaultLogger) format(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.format("DEBUG", format, args...))
}

func (l *defaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.format("INFO", format, args...))
}

func (l *defaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.format("WARN", format, args...))
}

func (l *defaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.format("ERROR", format, args...))
}

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(bool)                     {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
