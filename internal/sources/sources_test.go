package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goodtwin/go-patternlib/internal/sources"
)

func touch(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root,
		"src/base.css",
		"src/forms/input.less",
		"src/forms/button.scss",
		"src/readme.md",
		"vendor/x.styl",
	)
	j := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	exp, err := sources.Expand([]string{
		filepath.Join(root, "src", "**", "*"),
		j("src/base.css"), // duplicate of a glob match
		j("missing.less"), // literal kept for the caller to report
		filepath.Join(root, "nothing", "*.css"),
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	wantFiles := []string{
		j("src/base.css"),
		j("src/forms/button.scss"),
		j("src/forms/input.less"),
		j("missing.less"),
	}
	if diff := cmp.Diff(wantFiles, exp.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "nothing", "*.css")}, exp.Unmatched); diff != "" {
		t.Errorf("Unmatched mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	patterns := []string{"src/**/*.less", "theme/base.css"}

	tests := []struct {
		path string
		want bool
	}{
		{"src/forms/input.less", true},
		{"src/input.less", true},
		{"src/forms/input.css", false},
		{"theme/base.css", true},
		{"./theme/base.css", true},
		{"theme/other.css", false},
	}
	for _, tt := range tests {
		if got := sources.Match(patterns, filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRoots(t *testing.T) {
	t.Parallel()

	got := sources.Roots([]string{"src/**/*.less", "src/*.css", "theme/base.css", "*.css"})
	want := []string{"src", "theme", "."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Roots mismatch (-want +got):\n%s", diff)
	}
}

func TestIsStylesheet(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"a.css", "a.LESS", "a.sass", "a.scss", "a.styl"} {
		if !sources.IsStylesheet(p) {
			t.Errorf("IsStylesheet(%q) = false", p)
		}
	}
	for _, p := range []string{"a.md", "a", "a.css.map"} {
		if sources.IsStylesheet(p) {
			t.Errorf("IsStylesheet(%q) = true", p)
		}
	}
}
