package patternlib

import (
	"errors"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/extract"
)

// Sentinel errors for library operations.
var (
	// ErrSourceNotFound marks a configured source that does not exist or a
	// glob that matched nothing. It is reported as a warning.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrSourceRead marks a source that exists but could not be read.
	ErrSourceRead = errors.New("failed to read source file")

	// ErrTemplateNotFound aborts a build before any output is written.
	ErrTemplateNotFound = errors.New("template file not found")

	// ErrNoOutputDir indicates Build was called without an output directory.
	ErrNoOutputDir = errors.New("output directory not specified")

	// Parser registry errors.
	ErrNoSectionParser = extract.ErrNoSectionParser
	ErrRegistryFrozen  = annotation.ErrRegistryFrozen
)
