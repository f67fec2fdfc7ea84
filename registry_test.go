package patternlib

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/config"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("built-ins only", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(nil)
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}
		for _, key := range []string{
			annotation.KeyName, annotation.KeyDescription, annotation.KeySection,
			annotation.KeyState, annotation.KeyMarkup, annotation.KeyParam,
			annotation.KeyType, annotation.KeyExample,
		} {
			if _, ok := r.Lookup(key); !ok {
				t.Errorf("built-in parser %q missing", key)
			}
		}
	})

	t.Run("declarative parsers", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(map[string]config.ParserConfig{
			"token": {Separator: " | ", Fields: []string{"name", "value", "note"}},
			"since": {},
		})
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}

		token, ok := r.Lookup("token")
		if !ok {
			t.Fatal("token parser missing")
		}
		got := token.Parse(1, " brand | #f00 ", nil, "a.css")
		want := map[string]string{"name": "brand", "value": "#f00"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("token parse mismatch (-want +got):\n%s", diff)
		}

		since, _ := r.Lookup("since")
		if got := since.Parse(1, "  2.0 ", nil, "a.css"); got != "2.0" {
			t.Errorf("since parse = %v, want 2.0", got)
		}
	})

	t.Run("declarative parser overrides built-in", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(map[string]config.ParserConfig{
			annotation.KeyType: {Separator: "/", Fields: []string{"kind", "variant"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		p, _ := r.Lookup(annotation.KeyType)
		if _, ok := p.Parse(1, "color/primary", nil, "").(map[string]string); !ok {
			t.Error("configured parser should replace the built-in type parser")
		}
	})
}
