package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goodtwin/go-patternlib/internal/fileutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, filePath, "test")

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.gohtml"), "<h1>{{.Title}}</h1>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := loader.LoadTemplate("index.gohtml")
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if got != "<h1>{{.Title}}</h1>" {
		t.Errorf("LoadTemplate() = %q", got)
	}

	if _, err := loader.LoadTemplate("index.handlebars"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("missing template error = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadTemplate("../index.gohtml"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("traversal error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_CopyAssets(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "index.gohtml"), "entry")
	writeFile(t, filepath.Join(src, "assets", "css", "theme.css"), "body{}")
	writeFile(t, filepath.Join(src, "logo.svg"), "<svg/>")
	// Same name as the entry template, but nested: still mirrored.
	writeFile(t, filepath.Join(src, "partials", "index.gohtml"), "nested")

	loader, err := NewFilesystemLoader(src)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	dst := t.TempDir()
	copied, err := loader.CopyAssets(dst, "index.gohtml")
	if err != nil {
		t.Fatalf("CopyAssets() error = %v", err)
	}
	if len(copied) != 3 {
		t.Errorf("copied %d files, want 3", len(copied))
	}

	for _, rel := range []string{"assets/css/theme.css", "logo.svg", "partials/index.gohtml"} {
		if !fileutil.FileExists(filepath.Join(dst, filepath.FromSlash(rel))) {
			t.Errorf("%s not mirrored", rel)
		}
	}
	if fileutil.FileExists(filepath.Join(dst, "index.gohtml")) {
		t.Error("entry template should not be mirrored")
	}
}

func TestFilesystemLoader_CopyAssets_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.txt"), "secret")

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "index.gohtml"), "entry")
	if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(src, "leak.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	loader, err := NewFilesystemLoader(src)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err = loader.CopyAssets(t.TempDir(), "index.gohtml")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("CopyAssets() error = %v, want ErrPathTraversal", err)
	}
}
