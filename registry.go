package patternlib

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/config"
)

// NewRegistry returns the built-in parsers plus the declarative ones from
// parsers, registered in key order so the result is deterministic.
func NewRegistry(parsers map[string]config.ParserConfig) (*annotation.Registry, error) {
	r := annotation.DefaultRegistry()
	for _, key := range slices.Sorted(maps.Keys(parsers)) {
		p := parsers[key]
		if err := r.Register(key, annotation.SplitParser(p.Separator, p.Fields)); err != nil {
			return nil, fmt.Errorf("registering parser %q: %w", key, err)
		}
	}
	return r, nil
}
