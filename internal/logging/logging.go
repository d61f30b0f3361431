// Package logging provides tealog's own diagnostic logging, built on
// charmbracelet/log.
//
// These are the messages the tool emits about itself (a store that failed to
// open, a persisted level that could not be decoded), not the output of the
// loggers tealog manages. Everything goes to stderr so stdout stays free for
// command output such as `tealog list --json`.
//
//	logging.Setup(verbose, quiet, jsonFormat) // once, from the CLI pre-run hook
//	var logger = logging.New("pool")
//	logger.Debug("restored level", "logger", "db", "level", "debug")
//
// Call Setup before New: charmbracelet/log copies the default logger's
// settings into a child at creation time.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the default diagnostic logger. verbose lowers the level
// to Debug, quiet raises it to Error, and quiet wins when both are set.
// jsonFormat switches to one JSON object per line.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a diagnostic logger prefixed with component. An empty
// component yields a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// NewWithOutput returns a Debug-level diagnostic logger writing to w. Tests
// use it to capture what a component reports.
func NewWithOutput(component string, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: component,
		Level:  log.DebugLevel,
	})
}

// SetOutput redirects the default diagnostic logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
