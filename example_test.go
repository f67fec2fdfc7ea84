package patternlib_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	patternlib "github.com/goodtwin/go-patternlib"
)

// Example builds a one-page styleguide with the built-in template.
func Example() {
	dir, err := os.MkdirTemp("", "patternlib-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "button.scss")
	css := "/*\n@name Button\n@section forms.button\n*/\n.btn {}\n"
	if err := os.WriteFile(src, []byte(css), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	b, err := patternlib.NewBuilder(nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	report, err := b.Build(context.Background(), []string{src}, filepath.Join(dir, "docs"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, p := range report.Pages {
		rel, _ := filepath.Rel(dir, p.Path)
		fmt.Println(filepath.ToSlash(rel), p.Status)
	}
	// Output: docs/forms/index.html created
}

// Example_customParser registers a parser for an extra annotation.
func Example_customParser() {
	b, err := patternlib.NewBuilder(nil,
		patternlib.WithParser("since", patternlib.ParserFunc(
			func(_ int, line string, _ *patternlib.Block, _ string) any {
				return "v" + line
			})),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(b.Config().TemplateIndex)
	// Output: index.gohtml
}
