package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every console log line.
const Prefix = "levelpack"

// ConsoleLogger writes log messages to stderr.
// Verbose messages are emitted at debug level and only when verbose mode is on.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	logger *log.Logger
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
func NewConsoleLoggerWithWriter(w io.Writer, verbose bool) *ConsoleLogger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &ConsoleLogger{
		logger: log.NewWithOptions(w, log.Options{
			Prefix: Prefix,
			Level:  level,
		}),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if len(args) == 0 {
		l.logger.Debug(format)
		return
	}
	l.logger.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if len(args) == 0 {
		l.logger.Info(format)
		return
	}
	l.logger.Infof(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	if len(args) == 0 {
		l.logger.Error(format)
		return
	}
	l.logger.Errorf(format, args...)
}
