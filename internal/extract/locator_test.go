package extract

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestLineLocator - block and line comments in preprocessor syntaxes
// ---------------------------------------------------------------------------

func TestLineLocator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Region
	}{
		{
			name: "doc block with star decorations",
			src: "/**\n" +
				" * @name Button\n" +
				" * @section forms.button\n" +
				" */\n" +
				".btn { color: red; }\n",
			want: []Region{{Line: 1, Lines: []string{"", "@name Button", "@section forms.button", ""}}},
		},
		{
			name: "single line block comment",
			src:  "/* @section a.b */\n",
			want: []Region{{Line: 1, Lines: []string{"@section a.b"}}},
		},
		{
			name: "consecutive line comments merge",
			src: "// @name Grid\n" +
				"// @section layout.grid\n" +
				"\n" +
				"// @name Other\n",
			want: []Region{
				{Line: 1, Lines: []string{"@name Grid", "@section layout.grid"}},
				{Line: 4, Lines: []string{"@name Other"}},
			},
		},
		{
			name: "line comment after block is a new region",
			src: "/* a */\n" +
				"// b\n",
			want: []Region{
				{Line: 1, Lines: []string{"a"}},
				{Line: 2, Lines: []string{"b"}},
			},
		},
		{
			name: "trailing comment on code line is ignored",
			src:  ".a { color: red; } // not docs\n",
			want: nil,
		},
		{
			name: "unterminated block comment is kept",
			src:  "/*\n@section x.y\n",
			want: []Region{{Line: 1, Lines: []string{"", "@section x.y"}}},
		},
		{
			name: "no comments",
			src:  ".a { color: red; }\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := (&LineLocator{}).Locate(context.Background(), []byte(tt.src))
			if err != nil {
				t.Fatalf("Locate: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("regions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTreeSitterLocator - comments found through the CSS grammar
// ---------------------------------------------------------------------------

func TestTreeSitterLocator(t *testing.T) {
	t.Parallel()

	src := "/*\n" +
		" * @name Card\n" +
		" * @section content.card\n" +
		" */\n" +
		".card { padding: 1rem; }\n" +
		"\n" +
		"/* @section content.media */\n" +
		".media { display: flex; }\n"

	got, err := (&TreeSitterLocator{}).Locate(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	want := []Region{
		{Line: 1, Lines: []string{"", "@name Card", "@section content.card", ""}},
		{Line: 7, Lines: []string{"@section content.media"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestLocatorFor(t *testing.T) {
	t.Parallel()

	if _, ok := LocatorFor("a/b/site.CSS").(*TreeSitterLocator); !ok {
		t.Error("expected tree-sitter locator for .css")
	}
	for _, f := range []string{"x.less", "x.scss", "x.sass", "x.styl"} {
		if _, ok := LocatorFor(f).(*LineLocator); !ok {
			t.Errorf("expected line locator for %s", f)
		}
	}
}
