package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Options selects the log level and, when File is set, a rotated file sink
// written in addition to the console output.
type Options struct {
	Level      string
	File       string // rotated log file path; empty disables file output
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
	MaxAgeDays int    // days to keep rotated files
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a console-only singleton logger at the provided level. The
// first call (Get or Init) fixes the configuration; subsequent calls return
// the already initialized instance.
func Get(level string) *Logger {
	return Init(Options{Level: level})
}

// Init returns the singleton logger built from opts.
func Init(opts Options) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(opts)
	})
	return globalLogger
}
