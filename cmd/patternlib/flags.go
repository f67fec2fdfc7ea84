package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// errUsage marks command-line mistakes so they map to ExitUsage.
var errUsage = errors.New("invalid usage")

// defaultDebounce is the quiet period watch waits for before rebuilding.
const defaultDebounce = 200 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// templateFlags holds template selection flags.
type templateFlags struct {
	dir        string
	index      string
	cssInclude string
	docRoot    string
	project    string
}

// layoutFlags holds output layout flags.
type layoutFlags struct {
	flat               bool
	outputIndex        string
	dedupe             string
	includeEmpty       bool
	includeUnsectioned bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	workers  int
	template templateFlags
	layout   layoutFlags

	// changed records which flags were given explicitly, so zero values
	// such as --flat=false still override the config file.
	changed func(name string) bool
}

// watchFlags extends buildFlags with watch-only settings.
type watchFlags struct {
	buildFlags
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load PATTERNLIB_* variables from file (default: .env)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file details")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.dir, "template", "t", "", "template directory (default: built-in)")
	fs.StringVar(&f.index, "template-index", "", "entry template file name")
	fs.StringVar(&f.cssInclude, "css-include", "", "stylesheet linked from every page")
	fs.StringVar(&f.docRoot, "doc-root", "", "base path for navigation links")
	fs.StringVar(&f.project, "project", "", "metadata file exposed as .Project")
}

// addLayoutFlags adds layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.BoolVar(&f.flat, "flat", false, "write <group>.html instead of <group>/index.html")
	fs.StringVar(&f.outputIndex, "output-index", "", "root page file name in flat mode")
	fs.StringVar(&f.dedupe, "dedupe", "", "duplicate detection: content or source")
	fs.BoolVar(&f.includeEmpty, "include-empty", false, "keep files without blocks and unsectioned blocks")
	fs.BoolVar(&f.includeUnsectioned, "include-unsectioned", false, "keep blocks without @section")
}

// newBuildFlagSet registers the build flags on a new FlagSet.
func newBuildFlagSet(name string, f *buildFlags, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel parsers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.template)
	addLayoutFlags(fs, &f.layout)

	fs.Usage = func() { usage(stderr) }
	f.changed = fs.Changed
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet("build", f, printBuildUsage, stderr)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	if err := validateFlags(f); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := newBuildFlagSet("watch", &f.buildFlags, printWatchUsage, stderr)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "quiet period before rebuilding")

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	if err := validateFlags(&f.buildFlags); err != nil {
		return nil, nil, err
	}
	if f.debounce < 0 {
		return nil, nil, fmt.Errorf("%w: --debounce must not be negative, got %v", errUsage, f.debounce)
	}
	return f, fs.Args(), nil
}

// validateFlags rejects combinations the config layer cannot express.
func validateFlags(f *buildFlags) error {
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", errUsage)
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: --workers must not be negative, got %d", errUsage, f.workers)
	}
	return nil
}

// usageError wraps a pflag error unless it is a help request.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}
