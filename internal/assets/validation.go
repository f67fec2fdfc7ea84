package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a template name is a bare file name.
// Returns ErrInvalidAssetName if the name is empty, a dot entry, or contains
// path separators or null bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
