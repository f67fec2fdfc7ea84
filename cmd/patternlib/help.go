package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: patternlib <command> [flags] [sources...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Generate the styleguide once")
	fmt.Fprintln(w, "  watch      Rebuild the styleguide when sources change")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'patternlib help <command>' for details on a specific command.")
}

// printBuildFlags prints the flags shared by build and watch.
func printBuildFlags(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  sources    Stylesheet files or globs (default: sources from config)")
	fmt.Fprintln(w, "             \"**\" matches any number of directories")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: docs)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel parsers (0 = auto)")
	fmt.Fprintln(w, "      --env-file <path>       Load PATTERNLIB_* variables from file (default: .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <dir>        Template directory (default: built-in)")
	fmt.Fprintln(w, "      --template-index <name> Entry template file (default: index.gohtml)")
	fmt.Fprintln(w, "      --css-include <url>     Stylesheet linked from every page")
	fmt.Fprintln(w, "      --doc-root <path>       Base path for navigation links")
	fmt.Fprintln(w, "      --project <file>        Metadata exposed as .Project (default: package.json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --flat                  Write <group>.html instead of <group>/index.html")
	fmt.Fprintln(w, "      --output-index <name>   Root page name in flat mode (default: index.html)")
	fmt.Fprintln(w, "      --dedupe <mode>         content or source (default: content)")
	fmt.Fprintln(w, "      --include-empty         Keep files without blocks and unsectioned blocks")
	fmt.Fprintln(w, "      --include-unsectioned   Keep blocks without @section")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show per-file details")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: patternlib build [sources...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan stylesheets for documentation blocks and render one page per section.")
	fmt.Fprintln(w)
	printBuildFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: patternlib watch [sources...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build, then rebuild whenever a source or template file changes.")
	fmt.Fprintln(w, "Unchanged files are served from a parse cache.")
	fmt.Fprintln(w)
	printBuildFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <duration>   Quiet period before rebuilding (default: 200ms)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: patternlib version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: patternlib help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
