// Package logger provides leveled logging gated by a runtime verbosity check.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// VerboseChecker reports whether verbose output is currently enabled.
// The check runs on every call so a flag parsed after construction
// still takes effect.
type VerboseChecker func() bool

// Field is a key/value pair rendered after the log message.
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err wraps an error as a Field keyed "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Duration wraps a duration as a Field keyed "duration".
func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d.Round(time.Millisecond)}
}

// Logger writes leveled, timestamped lines to a writer. Debug and Info
// are suppressed unless the verbose check returns true; Warn and Error
// always print.
type Logger struct {
	component string
	isVerbose VerboseChecker
	out       io.Writer
}

// New creates a logger for the given component writing to stderr.
func New(component string, isVerbose VerboseChecker) *Logger {
	return NewWithWriter(component, isVerbose, os.Stderr)
}

// NewWithWriter creates a logger writing to the given writer.
func NewWithWriter(component string, isVerbose VerboseChecker, out io.Writer) *Logger {
	if isVerbose == nil {
		isVerbose = func() bool { return false }
	}
	return &Logger{component: component, isVerbose: isVerbose, out: out}
}

// WithComponent returns a logger that shares the verbosity check and
// writer but reports a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{component: component, isVerbose: l.isVerbose, out: l.out}
}

func (l *Logger) Debug(msg string, fields ...Field) {
	if l.isVerbose() {
		l.write("DEBUG", msg, fields)
	}
}

func (l *Logger) Info(msg string, fields ...Field) {
	if l.isVerbose() {
		l.write("INFO", msg, fields)
	}
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.write("WARN", msg, fields)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.write("ERROR", msg, fields)
}

func (l *Logger) write(level, msg string, fields []Field) {
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(l.out, "[%s] %s %s: %s", ts, level, l.component, msg)
	for _, f := range fields {
		fmt.Fprintf(l.out, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.out)
}
