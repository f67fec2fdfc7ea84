package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	patternlib "github.com/goodtwin/go-patternlib"
	"github.com/goodtwin/go-patternlib/internal/logging"
)

// errNoSources reports a build without source patterns.
var errNoSources = fmt.Errorf("%w: no sources given (pass globs or set sources in config)", errUsage)

// runBuild parses flags and runs a single build.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, logger, err := prepare(f, positional, env)
	if err != nil {
		return withHint(err, nil)
	}

	builder, err := patternlib.NewBuilder(cfg, patternlib.WithLogger(logger))
	if err != nil {
		return withHint(err, cfg)
	}

	report, err := builder.Build(ctx, nil, "")
	if err != nil {
		return withHint(err, cfg)
	}

	printReport(report, f.common, env)
	return nil
}

// prepare loads env files and config and builds the CLI logger.
func prepare(f *buildFlags, positional []string, env *Environment) (*patternlib.Config, *log.Logger, error) {
	if err := loadDotEnv(f.common.envFile); err != nil {
		return nil, nil, err
	}
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(f, positional, loadEnvConfig())
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, nil, errNoSources
	}

	logger := logging.New(env.Stderr, logging.Options{
		Level: logging.LevelFor(f.common.quiet, f.common.verbose, cfg.LogLevel),
	})
	return cfg, logger, nil
}

// printReport writes one line per page plus a summary.
func printReport(r *patternlib.Report, flags commonFlags, env *Environment) {
	if flags.quiet {
		return
	}

	for _, p := range r.Pages {
		if p.Status == patternlib.StatusUnchanged {
			if flags.verbose {
				fmt.Fprintf(env.Stdout, "‣ Styleguide unchanged at: %s\n", p.Path)
			}
			continue
		}
		fmt.Fprintf(env.Stdout, "✓ Styleguide %s at: %s\n", p.Status, p.Path)
	}

	if len(r.Pages) == 0 {
		fmt.Fprintln(env.Stdout, "No documented blocks found")
		return
	}

	var size int
	for _, p := range r.Pages {
		size += p.Size
	}
	fmt.Fprintf(env.Stdout, "\n%d blocks in %d groups from %d files, %d of %d pages changed (%s, %v)\n",
		r.Blocks, r.Groups, len(r.Files), r.Changed(), len(r.Pages),
		humanize.Bytes(uint64(size)), r.Duration.Round(time.Millisecond))
}
