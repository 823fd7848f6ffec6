// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// Every logger writes to stderr: in server mode stdout carries the msgpack stream.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a component logger at the global level. Caller reporting turns
// on together with debug output.
func New(prefix string) *log.Logger {
	level := log.GetLevel()
	return NewWithConfig(prefix, level, level <= log.DebugLevel, true, log.TextFormatter)
}

// Default creates a timestamp-free charm log that respects the global log level
func Default(prefix string) *log.Logger {
	return NewWithConfig(prefix, log.GetLevel(), false, false, log.TextFormatter)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
