package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	patternlib "github.com/goodtwin/go-patternlib"
)

// envPrefix namespaces the variables read by the CLI.
const envPrefix = "PATTERNLIB_"

// defaultEnvFile is loaded when present and --env-file is not given.
const defaultEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing the YAML file.
type envConfig struct {
	ConfigPath    string   // PATTERNLIB_CONFIG: config file name or path
	Output        string   // PATTERNLIB_OUTPUT: output directory
	Template      string   // PATTERNLIB_TEMPLATE: template directory
	TemplateIndex string   // PATTERNLIB_TEMPLATE_INDEX: entry template file
	DocRoot       string   // PATTERNLIB_DOC_ROOT: navigation base path
	CSSInclude    string   // PATTERNLIB_CSS_INCLUDE: linked stylesheet
	Sources       []string // PATTERNLIB_SOURCES: comma-separated globs
	Project       string   // PATTERNLIB_PROJECT: metadata file
	Dedupe        string   // PATTERNLIB_DEDUPE: content or source
	LogLevel      string   // PATTERNLIB_LOG_LEVEL: debug, info, warn, error
	Workers       int      // PATTERNLIB_WORKERS: parallel parsers
	Flat          *bool    // PATTERNLIB_FLAT: flat layout
}

// knownEnvVars lists valid PATTERNLIB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PATTERNLIB_CONFIG":         true,
	"PATTERNLIB_OUTPUT":         true,
	"PATTERNLIB_TEMPLATE":       true,
	"PATTERNLIB_TEMPLATE_INDEX": true,
	"PATTERNLIB_DOC_ROOT":       true,
	"PATTERNLIB_CSS_INCLUDE":    true,
	"PATTERNLIB_SOURCES":        true,
	"PATTERNLIB_PROJECT":        true,
	"PATTERNLIB_DEDUPE":         true,
	"PATTERNLIB_LOG_LEVEL":      true,
	"PATTERNLIB_WORKERS":        true,
	"PATTERNLIB_FLAT":           true,
}

// loadDotEnv loads PATTERNLIB_* variables from a dotenv file without
// overriding variables already set in the process environment.
// An explicit path must exist; the default .env is optional.
func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", path, err)
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("PATTERNLIB_CONFIG"),
		Output:        os.Getenv("PATTERNLIB_OUTPUT"),
		Template:      os.Getenv("PATTERNLIB_TEMPLATE"),
		TemplateIndex: os.Getenv("PATTERNLIB_TEMPLATE_INDEX"),
		DocRoot:       os.Getenv("PATTERNLIB_DOC_ROOT"),
		CSSInclude:    os.Getenv("PATTERNLIB_CSS_INCLUDE"),
		Project:       os.Getenv("PATTERNLIB_PROJECT"),
		Dedupe:        os.Getenv("PATTERNLIB_DEDUPE"),
		LogLevel:      os.Getenv("PATTERNLIB_LOG_LEVEL"),
	}

	if srcs := os.Getenv("PATTERNLIB_SOURCES"); srcs != "" {
		for _, s := range strings.Split(srcs, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Sources = append(cfg.Sources, s)
			}
		}
	}

	if workers := os.Getenv("PATTERNLIB_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if flat := os.Getenv("PATTERNLIB_FLAT"); flat != "" {
		if b, err := strconv.ParseBool(flat); err == nil {
			cfg.Flat = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PATTERNLIB_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; flags are applied afterwards,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *patternlib.Config) {
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.Template != "" {
		cfg.Template = env.Template
	}
	if env.TemplateIndex != "" {
		cfg.TemplateIndex = env.TemplateIndex
	}
	if env.DocRoot != "" {
		cfg.DocRoot = env.DocRoot
	}
	if env.CSSInclude != "" {
		cfg.CSSInclude = env.CSSInclude
	}
	if len(env.Sources) > 0 {
		cfg.Sources = env.Sources
	}
	if env.Project != "" {
		cfg.Project = env.Project
	}
	if env.Dedupe != "" {
		cfg.Dedupe = env.Dedupe
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Flat != nil {
		cfg.Flat = *env.Flat
	}
}
