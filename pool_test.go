package patternlib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/extract"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSize_Bounds(t *testing.T) {
	t.Parallel()

	t.Run("minimum is 1", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, should be at least %d", got, MinPoolSize)
		}
	})

	t.Run("maximum is 8", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, should be at most %d", got, MaxPoolSize)
		}
	})

	t.Run("explicit can exceed max", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(16)
		if got != 16 {
			t.Errorf("ResolvePoolSize(16) = %d, want 16", got)
		}
	})
}

func newTestExtractor(t *testing.T) *extract.Extractor {
	t.Helper()
	ex, err := extract.New(annotation.DefaultRegistry(), extract.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return ex
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var files []string
		for _, name := range []string{"c.scss", "a.scss", "b.scss", "d.scss", "e.scss"} {
			path := filepath.Join(dir, name)
			src := "/*\n@section " + name[:1] + "\n*/\n"
			if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
				t.Fatal(err)
			}
			files = append(files, path)
		}

		results := extractAll(context.Background(), newTestExtractor(t), nil, files, runtime.GOMAXPROCS(0))

		if len(results) != len(files) {
			t.Fatalf("len(results) = %d, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.path != files[i] {
				t.Errorf("results[%d].path = %q, want %q", i, r.path, files[i])
			}
			if r.err != nil {
				t.Errorf("results[%d].err = %v", i, r.err)
				continue
			}
			if len(r.blocks) != 1 || r.blocks[0].Section.ID != filepath.Base(files[i])[:1] {
				t.Errorf("results[%d].blocks = %+v", i, r.blocks)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "gone.css")
		results := extractAll(context.Background(), newTestExtractor(t), nil, []string{missing}, 1)

		if !errors.Is(results[0].err, ErrSourceNotFound) {
			t.Errorf("err = %v, want ErrSourceNotFound", results[0].err)
		}
	})

	t.Run("directory is a read error", func(t *testing.T) {
		t.Parallel()

		results := extractAll(context.Background(), newTestExtractor(t), nil, []string{t.TempDir()}, 1)

		if !errors.Is(results[0].err, ErrSourceRead) {
			t.Errorf("err = %v, want ErrSourceRead", results[0].err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.css")
		if err := os.WriteFile(path, []byte("/*\n@section a\n*/\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := extractAll(ctx, newTestExtractor(t), nil, []string{path}, 1)
		if !errors.Is(results[0].err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", results[0].err)
		}
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		if got := extractAll(context.Background(), newTestExtractor(t), nil, nil, 4); got != nil {
			t.Errorf("extractAll(nil) = %v, want nil", got)
		}
	})
}
