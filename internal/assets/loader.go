package assets

import "github.com/goodtwin/go-patternlib/internal/fileutil"

// Loader defines the contract for reading a template set.
type Loader interface {
	// LoadTemplate loads the named template file from the set root.
	// Returns ErrTemplateNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetName if the name contains path separators.
	LoadTemplate(name string) (string, error)

	// CopyAssets mirrors every file except exclude into dst.
	CopyAssets(dst, exclude string) ([]Copied, error)

	// Source describes where the set comes from, for logs.
	Source() string
}

// Copied describes one mirrored asset.
type Copied struct {
	Path   string // destination path
	Size   int64
	Status fileutil.WriteStatus
}
