package patternlib

import (
	"github.com/charmbracelet/log"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/config"
)

// Public names for the building blocks callers interact with.
type (
	// Config is the build configuration; see DefaultConfig and LoadConfig.
	Config = config.Config

	// ParserConfig declares an annotation parser in configuration.
	ParserConfig = config.ParserConfig

	// Block is one parsed comment block.
	Block = annotation.Block

	// Parser turns one annotation's text into a value.
	Parser = annotation.Parser

	// ParserFunc adapts a function to Parser.
	ParserFunc = annotation.ParserFunc
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a YAML configuration by name or path.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for progress and warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithParser registers a parser for key on top of the built-in and
// configured ones. Later registrations for the same key win.
func WithParser(key string, p Parser) Option {
	return func(b *Builder) {
		b.extraParsers = append(b.extraParsers, keyedParser{key: key, parser: p})
	}
}

// WithCache shares a parse cache between builders.
func WithCache(c *ParseCache) Option {
	return func(b *Builder) {
		b.cache = c
	}
}

// WithWorkers overrides the configured extraction concurrency.
// Panics if n < 0 (programmer error).
func WithWorkers(n int) Option {
	if n < 0 {
		panic("patternlib: WithWorkers count must not be negative")
	}
	return func(b *Builder) {
		b.workers = n
	}
}

type keyedParser struct {
	key    string
	parser Parser
}
