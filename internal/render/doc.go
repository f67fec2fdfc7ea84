// Package render turns grouped blocks into HTML pages.
//
// Each Renderer owns its own html/template instance and helper set, so two
// builds in one process never share template state. Helpers available to
// templates:
//
//	tree .Navigation            nested <ul> of the navigation tree
//	compilePartial BLOCK MOD    the block's @markup with {{modifier}} = MOD
//	markdown TEXT               GitHub-flavored Markdown
//	highlight CODE LANG         syntax-highlighted <pre>
//	annotations BLOCK KEY       every parsed value for KEY, in source order
package render
