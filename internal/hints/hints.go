// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// UserConfigDir locates the per-user config directory. Replaced in tests.
var UserConfigDir = os.UserConfigDir

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the per-user config location.
func ForConfigNotFound() string {
	hint := "use --config /path/to/file.yaml"
	if dir, err := UserConfigDir(); err == nil {
		hint += " or create " + filepath.Join(dir, "go-patternlib", "patternlib.yaml")
	}
	return format(hint)
}

// ForTemplateNotFound returns hints for a missing template directory or
// entry file.
func ForTemplateNotFound(templateIndex string) string {
	hints := []string{"omit --template to use the built-in template"}
	if templateIndex != "" {
		hints = append(hints, "the directory must contain "+templateIndex)
	}
	return formatHints(hints)
}

// ForNoSources returns a hint for builds without source patterns.
func ForNoSources() string {
	return format(`quote globs so the shell does not expand them, e.g. "src/**/*.scss"`)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateSyntax returns a hint for template parse errors.
func ForTemplateSyntax() string {
	return format("templates use Go html/template syntax: {{.Title}}, {{range .Entries}}...{{end}}")
}

// ForDedupeMode lists the accepted dedupe modes.
func ForDedupeMode(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
