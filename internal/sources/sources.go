// Package sources expands the configured source globs into stylesheet paths.
package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// Extensions lists the stylesheet syntaxes scanned for comment blocks.
var Extensions = []string{".css", ".less", ".sass", ".scss", ".styl"}

// IsStylesheet reports whether path has a scanned extension.
func IsStylesheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// HasMeta reports whether pattern contains glob syntax.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Expansion is the result of Expand.
type Expansion struct {
	Files     []string // in pattern order, deduplicated
	Unmatched []string // glob patterns that matched no stylesheet
}

// Expand resolves patterns in order. Literal paths are kept as given so the
// caller can report missing ones; glob matches are sorted per pattern and
// filtered to stylesheets.
func Expand(patterns []string) (Expansion, error) {
	var exp Expansion
	seen := make(map[string]struct{})

	add := func(p string) {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		exp.Files = append(exp.Files, p)
	}

	for _, pattern := range patterns {
		if !HasMeta(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return exp, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		sort.Strings(matches)

		n := 0
		for _, m := range matches {
			if !IsStylesheet(m) {
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			add(m)
			n++
		}
		if n == 0 {
			exp.Unmatched = append(exp.Unmatched, pattern)
		}
	}

	return exp, nil
}

// Match reports whether path is selected by any pattern. Literal patterns
// match by cleaned path equality.
func Match(patterns []string, path string) bool {
	clean := filepath.Clean(path)
	for _, pattern := range patterns {
		if !HasMeta(pattern) {
			if filepath.Clean(pattern) == clean {
				return true
			}
			continue
		}
		if ok, err := doublestar.PathMatch(pattern, clean); err == nil && ok && IsStylesheet(clean) {
			return true
		}
	}
	return false
}

// Roots returns the directories to watch for patterns: the literal prefix of
// each glob, or the parent directory of a literal path.
func Roots(patterns []string) []string {
	var roots []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		root := filepath.Dir(pattern)
		if HasMeta(pattern) {
			root = globBase(pattern)
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return roots
}

// globBase returns the longest leading directory without glob syntax.
func globBase(pattern string) string {
	parts := strings.Split(filepath.ToSlash(pattern), "/")
	var base []string
	for _, p := range parts {
		if HasMeta(p) {
			break
		}
		base = append(base, p)
	}
	if len(base) == len(parts) {
		base = base[:len(base)-1]
	}
	joined := strings.Join(base, "/")
	if joined == "" {
		if strings.HasPrefix(pattern, "/") {
			return "/"
		}
		return "."
	}
	return filepath.FromSlash(joined)
}
