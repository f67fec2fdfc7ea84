package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"

	"github.com/goodtwin/go-patternlib/internal/annotation"
	"github.com/goodtwin/go-patternlib/internal/fileutil"
	"github.com/goodtwin/go-patternlib/internal/navtree"
)

// Sentinel errors for rendering.
var (
	ErrTemplateParse   = errors.New("template parse failed")
	ErrTemplateExecute = errors.New("template execution failed")
)

// Options configures a Renderer.
type Options struct {
	Name       string // template name, for error messages
	Template   string // entry template source
	DocRoot    string
	CSSInclude string
	Project    map[string]any
	Layout     Layout
	Logger     *log.Logger
}

// Context is the data passed to the entry template for one group.
type Context struct {
	Title      string
	Group      string
	Entries    []*annotation.Block
	Navigation *navtree.Tree
	Project    map[string]any
	CSSInclude string
	DocRoot    string
	Root       string // relative path from the page to the output root
}

// Page is one written group page.
type Page struct {
	Group  string
	Path   string
	Size   int
	Status fileutil.WriteStatus
}

// Renderer renders group pages with a template environment of its own.
type Renderer struct {
	opts      Options
	layout    Layout
	tmpl      *template.Template
	md        goldmark.Markdown
	formatter *chromahtml.Formatter
	logger    *log.Logger
}

// New parses the entry template with a fresh helper set.
func New(opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Project == nil {
		opts.Project = map[string]any{}
	}
	if opts.Name == "" {
		opts.Name = "index"
	}

	r := &Renderer{
		opts:      opts,
		layout:    opts.Layout,
		md:        newMarkdown(),
		formatter: newFormatter(),
		logger:    logger,
	}

	tmpl, err := template.New(opts.Name).Funcs(r.funcs()).Parse(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Context builds the template data for one group.
func (r *Renderer) Context(group string, blocks []annotation.Block, nav *navtree.Tree) Context {
	entries := make([]*annotation.Block, len(blocks))
	for i := range blocks {
		entries[i] = &blocks[i]
	}
	return Context{
		Title:      Title(group),
		Group:      group,
		Entries:    entries,
		Navigation: nav,
		Project:    r.opts.Project,
		CSSInclude: r.opts.CSSInclude,
		DocRoot:    r.opts.DocRoot,
		Root:       r.layout.Root(group),
	}
}

// Execute renders c to HTML.
func (r *Renderer) Execute(c Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("%w: group %q: %v", ErrTemplateExecute, c.Group, err)
	}
	return buf.Bytes(), nil
}

// Write renders c and writes it under outDir unless the page is unchanged.
func (r *Renderer) Write(outDir string, c Context) (Page, error) {
	content, err := r.Execute(c)
	if err != nil {
		return Page{}, err
	}

	path := r.layout.OutputPath(outDir, c.Group)
	status, err := fileutil.WriteIfChanged(path, content, 0o644)
	if err != nil {
		return Page{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return Page{Group: c.Group, Path: path, Size: len(content), Status: status}, nil
}

// Layout returns the output layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}
