// Package extract turns stylesheet source text into annotation blocks.
//
// Extraction runs in two stages:
//
//  1. A Locator finds comment regions. ".css" files go through the
//     tree-sitter CSS grammar; preprocessor syntaxes (.less, .scss, .sass,
//     .styl) use a line scanner that understands both "/* */" blocks and
//     runs of "//" line comments.
//  2. The Extractor splits each region on "@key" markers, accumulates
//     continuation lines and hands every annotation to the parser
//     registered for its key.
//
// Blocks come out in source order. Comments without any "@key" marker are
// not documentation and are skipped.
package extract
