package main

import (
	"errors"
	"os"

	patternlib "github.com/goodtwin/go-patternlib"
	"github.com/goodtwin/go-patternlib/internal/config"
	"github.com/goodtwin/go-patternlib/internal/render"
	"github.com/goodtwin/go-patternlib/internal/styleguide"
)

// Exit codes for the patternlib CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build finished (warnings allowed)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template syntax
	ExitIO      = 3 // Missing template, unreadable or unwritable files
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, patternlib.ErrTemplateNotFound) ||
		errors.Is(err, patternlib.ErrSourceRead) ||
		errors.Is(err, patternlib.ErrNoOutputDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, styleguide.ErrInvalidDedupeMode) ||
		errors.Is(err, render.ErrTemplateParse) ||
		errors.Is(err, patternlib.ErrNoSectionParser) ||
		errors.Is(err, patternlib.ErrRegistryFrozen) {
		return ExitUsage
	}

	return ExitGeneral
}
