// Package assets provides the template set used to render a styleguide.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - the default template compiled into the binary
//	    └── FilesystemLoader  - a user template directory on disk
//
// Resolve picks one of them from the configured template directory. There
// is no per-file fallback between the two: a user directory that lacks the
// entry template is an error, so a typo never silently renders the default
// theme.
//
// # Directory Structure
//
// A template directory holds the entry template plus any static files:
//
//	{template}/
//	├── index.gohtml         # entry template (template_index)
//	└── assets/
//	    └── css/...          # mirrored under the output directory
//
// Every file except the entry template is mirrored into the output
// directory with the same relative path.
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
