package render

import (
	"bytes"
	"html"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/navtree"
	"github.com/goodtwin/go-patternlib/internal/styleguide"
)

// HighlightStyle is the chroma style used for code blocks.
const HighlightStyle = "github"

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		// Raw HTML in descriptions is dropped; WithUnsafe is not set.
	)
}

func newFormatter() *chromahtml.Formatter {
	return chromahtml.New(chromahtml.WithClasses(true))
}

// WriteHighlightCSS writes the stylesheet for the classes emitted by the
// highlight helper and fenced code in descriptions.
func WriteHighlightCSS(w io.Writer) error {
	style := styles.Get(HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	return newFormatter().WriteCSS(w, style)
}

// funcs builds the helper set for one Renderer.
func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"tree":           r.tree,
		"compilePartial": r.compilePartial,
		"markdown":       r.markdown,
		"highlight":      r.highlight,
		"annotations":    annotations,
	}
}

func (r *Renderer) markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		r.logger.Warn("markdown conversion failed", "err", err)
		return template.HTML(html.EscapeString(text)) // #nosec G203 -- escaped above
	}
	return template.HTML(buf.String()) // #nosec G203 -- goldmark output without raw HTML
}

func (r *Renderer) highlight(code, lang string) template.HTML {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err == nil {
		var buf bytes.Buffer
		if err = r.formatter.Format(&buf, style, it); err == nil {
			return template.HTML(buf.String()) // #nosec G203 -- chroma escapes token text
		}
	}
	r.logger.Warn("highlighting failed", "lang", lang, "err", err)
	return template.HTML("<pre><code>" + html.EscapeString(code) + "</code></pre>") // #nosec G203 -- escaped
}

// compilePartial renders the block's markup example as a template whose
// modifier is the given class string. Markup is author-controlled HTML and
// is emitted verbatim; a malformed example falls back to its escaped text.
func (r *Renderer) compilePartial(b *annotation.Block, modifier string) template.HTML {
	m := b.Markup()
	if m == nil {
		return ""
	}

	t, err := texttemplate.New("markup").
		Funcs(texttemplate.FuncMap{"modifier": func() string { return modifier }}).
		Option("missingkey=zero").
		Parse(m.Example)
	if err != nil {
		r.logger.Warn("markup is not a valid template", "block", b.Section.Dotted(), "file", b.File, "err", err)
		return template.HTML(m.Escaped) // #nosec G203 -- escaped by the markup parser
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, map[string]string{"modifier": modifier}); err != nil {
		r.logger.Warn("markup render failed", "block", b.Section.Dotted(), "file", b.File, "err", err)
		return template.HTML(m.Escaped) // #nosec G203 -- escaped by the markup parser
	}
	return template.HTML(buf.String()) // #nosec G203 -- author-controlled markup
}

func annotations(b *annotation.Block, key string) []any {
	return b.All(key)
}

// tree renders the navigation as nested lists. Leaves link to their
// group's page with the block id as fragment; leaves named "index" are
// listed only when they also carry children.
func (r *Renderer) tree(nav *navtree.Tree) template.HTML {
	if nav == nil {
		return ""
	}
	var sb strings.Builder
	r.writeNodes(&sb, nav.Root().Children())
	return template.HTML(sb.String()) // #nosec G203 -- names and hrefs escaped in writeNodes
}

func (r *Renderer) writeNodes(sb *strings.Builder, nodes []*navtree.Node) {
	sb.WriteString("<ul>")
	for _, n := range nodes {
		if n.Leaf && !n.HasChildren() && n.Name == styleguide.IndexID {
			continue
		}
		sb.WriteString("<li>")
		if n.Leaf {
			href := r.layout.Href(r.opts.DocRoot, n.Target) + "#" + n.Name
			sb.WriteString(`<a href="`)
			sb.WriteString(html.EscapeString(href))
			sb.WriteString(`">`)
			sb.WriteString(html.EscapeString(n.Name))
			sb.WriteString("</a>")
		} else {
			sb.WriteString("<span>")
			sb.WriteString(html.EscapeString(n.Name))
			sb.WriteString("</span>")
		}
		if n.HasChildren() {
			r.writeNodes(sb, n.Children())
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
}
