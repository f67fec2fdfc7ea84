package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:template
var embedded embed.FS

// DefaultTemplateIndex is the entry template of the embedded set.
const DefaultTemplateIndex = "index.gohtml"

// EmbeddedLoader loads the template set compiled into the binary.
// Implements Loader interface.
type EmbeddedLoader struct {
	root fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	root, err := fs.Sub(embedded, "template")
	if err != nil {
		panic(err) // fixed path inside the embed directive
	}
	return &EmbeddedLoader{root: root}
}

// LoadTemplate loads a template from the embedded set by file name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := fs.ReadFile(e.root, name)
	if err != nil {
		return "", fmt.Errorf("%w: %q (embedded)", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// CopyAssets mirrors the embedded static files into dst.
func (e *EmbeddedLoader) CopyAssets(dst, exclude string) ([]Copied, error) {
	return mirror(e.root, dst, exclude, nil)
}

// Source implements Loader.
func (e *EmbeddedLoader) Source() string {
	return "embedded"
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
