// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteStatus reports what WriteIfChanged did.
type WriteStatus int

const (
	StatusUnchanged WriteStatus = iota
	StatusCreated
	StatusOverwritten
)

func (s WriteStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusOverwritten:
		return "overwritten"
	default:
		return "unchanged"
	}
}

// ErrNotRegularFile indicates a path exists but is a directory or device.
var ErrNotRegularFile = errors.New("not a regular file")

// WriteIfChanged writes content to path unless the file already holds the
// same bytes. Parent directories are created. The write goes to a temp
// file in the target directory and is renamed into place.
func WriteIfChanged(path string, content []byte, perm os.FileMode) (WriteStatus, error) {
	existing, err := os.ReadFile(path) // #nosec G304 -- path is built by the caller from the output dir
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return StatusUnchanged, nil
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return StatusUnchanged, fmt.Errorf("reading %s: %w", path, err)
	}

	status := StatusOverwritten
	if err != nil {
		status = StatusCreated
	}

	if err := WriteAtomic(path, content, perm); err != nil {
		return StatusUnchanged, err
	}
	return status, nil
}

// WriteAtomic writes content through a temp file and rename.
func WriteAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmp) }

	if _, writeErr := tmpFile.Write(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// CopyFile copies src to dst unless dst already holds the same bytes.
func CopyFile(src, dst string) (WriteStatus, error) {
	info, err := os.Stat(src)
	if err != nil {
		return StatusUnchanged, fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return StatusUnchanged, fmt.Errorf("%w: %s", ErrNotRegularFile, src)
	}

	f, err := os.Open(src) // #nosec G304 -- src comes from a template directory walk
	if err != nil {
		return StatusUnchanged, fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return StatusUnchanged, fmt.Errorf("reading %s: %w", src, err)
	}
	return WriteIfChanged(dst, content, info.Mode().Perm())
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "patternlib" -> false (name)
//   - "./patternlib.yaml" -> true (relative path)
//   - "/etc/patternlib.yaml" -> true (absolute)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
