package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/goodtwin/go-patternlib/internal/fileutil"
)

// mirror copies every regular file of fsys into dst, skipping the root-level
// file named exclude. check, when non-nil, vets each source path first.
func mirror(fsys fs.FS, dst, exclude string, check func(rel string) error) ([]Copied, error) {
	var copied []Copied

	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		if d.IsDir() || rel == exclude {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if check != nil {
			if err := check(rel); err != nil {
				return err
			}
		}

		content, err := fs.ReadFile(fsys, rel)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
		}

		target := filepath.Join(dst, filepath.FromSlash(rel))
		status, err := fileutil.WriteIfChanged(target, content, 0o644)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetWrite, err)
		}
		copied = append(copied, Copied{Path: target, Size: int64(len(content)), Status: status})
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}
