// Package logger provides leveled logging for the exchange-rate tap.
// Messages go to stderr so they never mix with the record stream on stdout.
// Debug messages are only printed when verbose mode is enabled via the
// --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// Ensure Logger implements the interface.
var _ driven.Logger = (*Logger)(nil)

// Logger writes "[LEVEL] message" lines to an output writer.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	output  io.Writer
}

// New creates a logger writing to w. A nil w means os.Stderr.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{output: w, verbose: verbose}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, false)
}

// SetVerbose enables or disables debug logging.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput sets the output writer.
// Useful for testing.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.verbose {
		fmt.Fprintf(l.output, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.print("INFO", format, args...)
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.print("WARN", format, args...)
}

// Error prints an error message.
func (l *Logger) Error(format string, args ...any) {
	l.print("ERROR", format, args...)
}

// Fatal prints a message for an unrecoverable failure.
// It does not exit; the caller decides the exit status.
func (l *Logger) Fatal(format string, args ...any) {
	l.print("FATAL", format, args...)
}

func (l *Logger) print(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "["+level+"] "+format+"\n", args...)
}
