package main

import (
	"errors"
	"fmt"

	patternlib "github.com/goodtwin/go-patternlib"
	"github.com/goodtwin/go-patternlib/internal/config"
)

// defaultConfigName is looked up when neither --config nor
// PATTERNLIB_CONFIG is set. Its absence is not an error.
const defaultConfigName = "patternlib"

// resolveConfig loads the config file, then applies env vars, flags and
// positional sources in increasing order of precedence.
func resolveConfig(f *buildFlags, args []string, env *envConfig) (*patternlib.Config, error) {
	cfg, err := loadConfigFile(f.common.config, env.ConfigPath)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(env, cfg)
	mergeFlags(f, cfg)
	if len(args) > 0 {
		cfg.Sources = args
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile loads the explicitly named config, or the default one when
// it exists. An explicit name that cannot be found is an error.
func loadConfigFile(flagName, envName string) (*patternlib.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name != "" {
		cfg, err := patternlib.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := patternlib.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return patternlib.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *buildFlags, cfg *patternlib.Config) {
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}

	// Template flags
	if f.template.dir != "" {
		cfg.Template = f.template.dir
	}
	if f.template.index != "" {
		cfg.TemplateIndex = f.template.index
	}
	if f.template.cssInclude != "" {
		cfg.CSSInclude = f.template.cssInclude
	}
	if f.template.docRoot != "" {
		cfg.DocRoot = f.template.docRoot
	}
	if f.template.project != "" {
		cfg.Project = f.template.project
	}

	// Layout flags
	if f.layout.outputIndex != "" {
		cfg.OutputIndex = f.layout.outputIndex
	}
	if f.layout.dedupe != "" {
		cfg.Dedupe = f.layout.dedupe
	}
	if f.isSet("flat") {
		cfg.Flat = f.layout.flat
	}
	if f.isSet("include-empty") {
		cfg.IncludeEmptyFiles = f.layout.includeEmpty
	}
	if f.isSet("include-unsectioned") {
		cfg.IncludeUnsectioned = f.layout.includeUnsectioned
	}
}

// isSet reports whether a flag was given on the command line.
func (f *buildFlags) isSet(name string) bool {
	return f.changed != nil && f.changed(name)
}
