// Package heapcli provides small shared helpers for the simulated-heap
// demonstration binaries: consistent error exits and a timestamped
// logger.
package heapcli

import (
	"fmt"
	"os"
	"time"
)

// Version identifies the heapdemo tool's own release, independent of the
// library it drives.
const Version = "0.1.0"

// ExitWithError prints a message to stderr and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger provides minimal timestamped logging for a CLI tool, with
// informational output gated behind a verbosity flag.
type Logger struct {
	Verbose bool
}

// NewLogger creates a Logger.
func NewLogger(verbose bool) *Logger {
	return &Logger{Verbose: verbose}
}

// Info logs a message when verbose output is enabled.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Warn always logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}
