package extract

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

const commentQuery = `(comment) @comment`

// compiledCommentQuery is shared by all locators; queries are immutable once built.
var compiledCommentQuery = sync.OnceValues(func() (*sitter.Query, error) {
	return sitter.NewQuery([]byte(commentQuery), css.GetLanguage())
})

// TreeSitterLocator finds comments with the tree-sitter CSS grammar, so
// comment-like text inside strings and url() values is never mistaken for
// documentation.
type TreeSitterLocator struct{}

// Locate implements Locator.
func (l *TreeSitterLocator) Locate(ctx context.Context, src []byte) ([]Region, error) {
	query, err := compiledCommentQuery()
	if err != nil {
		return nil, fmt.Errorf("compiling comment query: %w", err)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(css.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing css: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var spans []commentSpan
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			spans = append(spans, commentSpan{
				line: int(c.Node.StartPoint().Row) + 1,
				text: c.Node.Content(src),
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].line < spans[j].line })
	return regionsFromSpans(spans), nil
}
