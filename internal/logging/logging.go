// Package logging builds the leveled logger shared by the library and CLI.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level     string // debug, info, warn, error; empty = info
	Prefix    string
	Timestamp bool
}

// New returns a text logger writing to w. An unknown level falls back to info.
func New(w io.Writer, opts Options) *log.Logger {
	level, err := log.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamp,
		TimeFormat:      "15:04:05",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// LevelFor maps the CLI verbosity flags onto a level name. quiet wins over
// verbose; neither keeps fallback.
func LevelFor(quiet, verbose bool, fallback string) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	default:
		return fallback
	}
}
