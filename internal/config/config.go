package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goodtwin/go-patternlib/internal/fileutil"
	"github.com/goodtwin/go-patternlib/internal/styleguide"
	"github.com/goodtwin/go-patternlib/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxFileNameLength = 255
	MaxIncludeLength  = 2048 // css_include is often a URL
	MaxParserKeyLen   = 64
	MaxWorkers        = 64
)

// Defaults applied by DefaultConfig.
const (
	DefaultTemplateIndex = "index.gohtml"
	DefaultOutputIndex   = "index.html"
	DefaultCSSInclude    = "dist/style/style.css"
	DefaultDocRoot       = "dist/docs"
	DefaultOutput        = "docs"
	DefaultProject       = "package.json"
)

// Config holds all configuration for a styleguide build.
type Config struct {
	Template           string                  `yaml:"template"`       // Template directory (empty = embedded)
	TemplateIndex      string                  `yaml:"template_index"` // Entry template inside Template
	OutputIndex        string                  `yaml:"output_index"`   // File name for the root group in flat mode
	IncludeEmptyFiles  bool                    `yaml:"include_empty_files"`
	CSSInclude         string                  `yaml:"css_include"`
	DocRoot            string                  `yaml:"doc_root"`
	Sources            []string                `yaml:"sources"` // Globs, "**" allowed
	Output             string                  `yaml:"output"`
	Flat               bool                    `yaml:"flat"`
	Dedupe             string                  `yaml:"dedupe"` // "content" or "source"
	IncludeUnsectioned bool                    `yaml:"include_unsectioned"`
	Project            string                  `yaml:"project"` // Metadata file exposed to templates
	Parsers            map[string]ParserConfig `yaml:"parsers"`
	Workers            int                     `yaml:"workers"` // 0 = auto
	LogLevel           string                  `yaml:"log_level"`
}

// ParserConfig declares an annotation parser without code.
// With a separator the line is split into the named fields; without one
// the trimmed line is kept.
type ParserConfig struct {
	Separator string   `yaml:"separator"`
	Fields    []string `yaml:"fields"`
}

// KeepUnsectioned reports whether blocks without @section are retained.
func (c *Config) KeepUnsectioned() bool {
	return c.IncludeUnsectioned || c.IncludeEmptyFiles
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("template", c.Template, MaxPathLength); err != nil {
		return err
	}
	if err := validateFileName("template_index", c.TemplateIndex); err != nil {
		return err
	}
	if err := validateFileName("output_index", c.OutputIndex); err != nil {
		return err
	}
	if err := validateFieldLength("css_include", c.CSSInclude, MaxIncludeLength); err != nil {
		return err
	}
	if err := validateFieldLength("doc_root", c.DocRoot, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output", c.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("project", c.Project, MaxPathLength); err != nil {
		return err
	}
	for i, s := range c.Sources {
		if err := validateFieldLength(fmt.Sprintf("sources[%d]", i), s, MaxPathLength); err != nil {
			return err
		}
	}

	if _, err := styleguide.ParseDedupeMode(c.Dedupe); err != nil {
		return fmt.Errorf("dedupe: %w", err)
	}

	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.LogLevel)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	for key, p := range c.Parsers {
		if key == "" || strings.ContainsAny(key, " \t@") {
			return fmt.Errorf("%w: parser key %q", ErrInvalidValue, key)
		}
		if err := validateFieldLength("parsers key", key, MaxParserKeyLen); err != nil {
			return err
		}
		if p.Separator != "" && len(p.Fields) == 0 {
			return fmt.Errorf("%w: parsers.%s: separator requires fields", ErrInvalidValue, key)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateFileName rejects empty names and names with separators.
func validateFileName(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, fieldName)
	}
	if fileutil.IsFilePath(value) || strings.ContainsRune(value, 0) || value == "." || value == ".." {
		return fmt.Errorf("%w: %s must be a bare file name, got %q", ErrInvalidValue, fieldName, value)
	}
	return validateFieldLength(fieldName, value, MaxFileNameLength)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		TemplateIndex: DefaultTemplateIndex,
		OutputIndex:   DefaultOutputIndex,
		CSSInclude:    DefaultCSSInclude,
		DocRoot:       DefaultDocRoot,
		Output:        DefaultOutput,
		Dedupe:        string(styleguide.DedupeContent),
		Project:       DefaultProject,
		LogLevel:      "info",
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-patternlib/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-patternlib", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
