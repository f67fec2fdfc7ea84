package annotation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goodtwin/go-patternlib/internal/annotation"
)

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// TestParseParam - "name - description - default" splitting
// ---------------------------------------------------------------------------

func TestParseParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want annotation.Param
	}{
		{
			name: "all three segments",
			line: "$color - text color - #333",
			want: annotation.Param{Name: "$color", Description: strPtr("text color"), Default: strPtr("#333")},
		},
		{
			name: "name and description",
			line: "$size - base size",
			want: annotation.Param{Name: "$size", Description: strPtr("base size")},
		},
		{
			name: "name only",
			line: "$size",
			want: annotation.Param{Name: "$size"},
		},
		{
			name: "empty line degrades to empty name",
			line: "",
			want: annotation.Param{Name: ""},
		},
		{
			name: "hyphen without spaces is not a separator",
			line: "$line-height",
			want: annotation.Param{Name: "$line-height"},
		},
		{
			name: "extra segments are ignored",
			line: "a - b - c - d",
			want: annotation.Param{Name: "a", Description: strPtr("b"), Default: strPtr("c")},
		},
		{
			name: "surrounding whitespace trimmed",
			line: "  $gap - spacing  ",
			want: annotation.Param{Name: "$gap", Description: strPtr("spacing")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := annotation.ParseParam(1, tt.line, nil, "a.css")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseParam(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseSection - dotted locator to path/id
// ---------------------------------------------------------------------------

func TestParseSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want annotation.Section
	}{
		{line: "a.b.c", want: annotation.Section{Path: "a/b", ID: "c"}},
		{line: "foo.bar", want: annotation.Section{Path: "foo", ID: "bar"}},
		{line: "single", want: annotation.Section{Path: "", ID: "single"}},
		{line: "  padded.id  ", want: annotation.Section{Path: "padded", ID: "id"}},
		{line: "category.component.page.index", want: annotation.Section{Path: "category/component/page", ID: "index"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, ok := annotation.ParseSection(3, tt.line, nil, "x.less").(annotation.Section)
			if !ok {
				t.Fatalf("ParseSection returned %T, want Section", got)
			}
			if got != tt.want {
				t.Errorf("ParseSection(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSection_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, dotted := range []string{"a.b.c", "foo.bar", "x.y.z.w", "solo"} {
		s := annotation.NewSection(dotted)
		if s.ID == "" {
			t.Errorf("NewSection(%q).ID is empty", dotted)
		}
		if got := s.Dotted(); got != dotted {
			t.Errorf("NewSection(%q).Dotted() = %q", dotted, got)
		}
	}

	s := annotation.NewSection("a.b.c")
	rejoined := strings.ReplaceAll(s.Path, "/", ".") + "." + s.ID
	if rejoined != "a.b.c" {
		t.Errorf("rejoined = %q, want %q", rejoined, "a.b.c")
	}
}

func TestSection_Segments(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"a", "b", "c"}, annotation.NewSection("a.b.c").Segments()); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, annotation.NewSection("c").Segments()); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Simple parsers
// ---------------------------------------------------------------------------

func TestParseTypeAndExample(t *testing.T) {
	t.Parallel()

	if got := annotation.ParseType(1, "  color  ", nil, ""); got != "color" {
		t.Errorf("ParseType = %#v, want %q", got, "color")
	}

	got := annotation.ParseExample(1, " <a class=\"btn\"></a> ", nil, "")
	want := annotation.Example{Example: `<a class="btn"></a>`}
	if got != want {
		t.Errorf("ParseExample = %#v, want %#v", got, want)
	}
}

func TestParseState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want annotation.State
	}{
		{
			line: ":hover - Highlights when hovering.",
			want: annotation.State{Name: ":hover", Escaped: "pseudo-class-hover", Description: "Highlights when hovering."},
		},
		{
			line: ".is-active",
			want: annotation.State{Name: ".is-active", Escaped: "is-active"},
		},
	}

	for _, tt := range tests {
		if got := annotation.ParseState(1, tt.line, nil, ""); got != tt.want {
			t.Errorf("ParseState(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}

func TestParseMarkup(t *testing.T) {
	t.Parallel()

	got := annotation.ParseMarkup(1, `<button class="{{modifier}}">Go</button>`, nil, "")
	want := annotation.Markup{
		Example: `<button class="{{modifier}}">Go</button>`,
		Escaped: `&lt;button class=&#34;{{modifier}}&#34;&gt;Go&lt;/button&gt;`,
	}
	if got != want {
		t.Errorf("ParseMarkup = %#v, want %#v", got, want)
	}
}

func TestSplitParser(t *testing.T) {
	t.Parallel()

	p := annotation.SplitParser(" | ", []string{"since", "author"})

	got := p.Parse(1, "1.2 | jane", nil, "")
	if diff := cmp.Diff(map[string]string{"since": "1.2", "author": "jane"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got = p.Parse(1, "1.2", nil, "")
	if diff := cmp.Diff(map[string]string{"since": "1.2"}, got); diff != "" {
		t.Errorf("missing segment mismatch (-want +got):\n%s", diff)
	}

	raw := annotation.SplitParser("", nil)
	if got := raw.Parse(1, "  plain  ", nil, ""); got != "plain" {
		t.Errorf("raw SplitParser = %#v, want %q", got, "plain")
	}
}

// ---------------------------------------------------------------------------
// Block accessors
// ---------------------------------------------------------------------------

func TestBlock_Accessors(t *testing.T) {
	t.Parallel()

	b := &annotation.Block{
		Annotations: []annotation.Annotation{
			{Key: "name", Line: "Button", Value: "Button"},
			{Key: "param", Line: "$a - first", Value: annotation.ParseParam(1, "$a - first", nil, "")},
			{Key: "param", Line: "$b", Value: annotation.ParseParam(2, "$b", nil, "")},
			{Key: "markup", Line: "<b></b>", Value: annotation.ParseMarkup(3, "<b></b>", nil, "")},
		},
	}

	if b.Name() != "Button" {
		t.Errorf("Name() = %q", b.Name())
	}
	if got := len(b.Params()); got != 2 {
		t.Errorf("len(Params()) = %d, want 2", got)
	}
	if !b.Has("markup") || b.Markup() == nil {
		t.Error("expected markup annotation")
	}
	if b.Has("type") || b.Type() != "" {
		t.Error("unexpected type annotation")
	}
	if b.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}
