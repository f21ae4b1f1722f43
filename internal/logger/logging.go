// Package logger provides modifications to charmbracelet/log's default
// logger shared by the zhconv binaries and packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log writing to stderr so converted text
// on stdout stays clean.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// SetDebug raises the global level to debug when enabled; otherwise warnings
// and up are reported.
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
