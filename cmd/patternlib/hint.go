package main

import (
	"errors"
	"os"

	patternlib "github.com/goodtwin/go-patternlib"
	"github.com/goodtwin/go-patternlib/internal/config"
	"github.com/goodtwin/go-patternlib/internal/hints"
	"github.com/goodtwin/go-patternlib/internal/render"
	"github.com/goodtwin/go-patternlib/internal/styleguide"
)

// hintedError appends an actionable hint to an error message while keeping
// the error chain intact for exitCodeFor.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint decorates err with a hint when one applies. cfg may be nil when
// the config itself failed to load.
func withHint(err error, cfg *patternlib.Config) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound()
	case errors.Is(err, errNoSources):
		hint = hints.ForNoSources()
	case errors.Is(err, patternlib.ErrTemplateNotFound):
		index := ""
		if cfg != nil {
			index = cfg.TemplateIndex
		}
		hint = hints.ForTemplateNotFound(index)
	case errors.Is(err, render.ErrTemplateParse):
		hint = hints.ForTemplateSyntax()
	case errors.Is(err, styleguide.ErrInvalidDedupeMode):
		hint = hints.ForDedupeMode([]string{string(styleguide.DedupeContent), string(styleguide.DedupeSource)})
	case errors.Is(err, os.ErrPermission):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
