// Package patternlib builds a living styleguide from documentation comments
// in stylesheets.
//
// # Quick Start
//
// Annotate a stylesheet:
//
//	/*
//	@name Button
//	@description Primary call to action.
//	@section forms.button
//	@state :hover - Hovered
//	@markup <button class="btn {{modifier}}">Go</button>
//	*/
//	.btn { ... }
//
// Then build the pages:
//
//	b, err := patternlib.NewBuilder(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := b.Build(ctx, []string{"src/**/*.scss"}, "docs")
//
// Every distinct @section path becomes a group rendered to its own page:
// forms.button lives on docs/forms/index.html under the anchor "button".
//
// # Build Pipeline
//
//  1. Source globs are expanded ("**" crosses directories)
//  2. Files are parsed concurrently; blocks are unioned in file order and
//     duplicates dropped
//  3. Blocks are sorted by section, with each group's index block first
//  4. A navigation tree is built from every section path
//  5. One page per group is rendered with the template; unchanged pages
//     are not rewritten
//  6. The template's static files are mirrored into the output
//
// # Configuration
//
// Load a YAML file, or start from DefaultConfig:
//
//	cfg, err := patternlib.LoadConfig("patternlib") // patternlib.yaml
//	b, err := patternlib.NewBuilder(cfg,
//	    patternlib.WithLogger(logger),
//	    patternlib.WithParser("since", patternlib.ParserFunc(parseSince)),
//	)
//
// Simple annotations can be declared without code:
//
//	parsers:
//	  token:
//	    separator: " - "
//	    fields: [name, value]
//
// # Templates
//
// The built-in template is embedded. A custom template directory holds the
// entry file (index.gohtml by default, Go html/template syntax) plus any
// static files, which are copied verbatim. Templates get helpers for the
// navigation tree, Markdown rendering, code highlighting and @markup
// partials with a modifier class.
//
// # Watch Mode
//
// Share a ParseCache between builds so only edited files are parsed again:
//
//	cache := patternlib.NewParseCache(0)
//	b, err := patternlib.NewBuilder(cfg, patternlib.WithCache(cache))
package patternlib
