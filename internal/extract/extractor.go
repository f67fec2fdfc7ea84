package extract

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goodtwin/go-patternlib/internal/annotation"
)

// ErrNoSectionParser indicates the registry cannot place blocks in the hierarchy.
var ErrNoSectionParser = errors.New("no section parser registered")

// markerPattern matches an annotation opener such as "@param $size - base".
var markerPattern = regexp.MustCompile(`^@([A-Za-z0-9_-]+)(?:\s+(.*))?$`)

// slugPattern collapses anything that is not a safe id character.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Options configures an Extractor.
type Options struct {
	// IncludeUnsectioned keeps blocks without @section under the root group.
	IncludeUnsectioned bool

	// Locator overrides extension-based locator selection.
	Locator Locator

	// Logger receives locator fallbacks. Nil discards.
	Logger *log.Logger
}

// Extractor parses comment blocks with a frozen parser registry.
// It is safe for concurrent use.
type Extractor struct {
	registry *annotation.Registry
	opts     Options
	logger   *log.Logger
}

// New creates an Extractor and freezes the registry.
// Returns ErrNoSectionParser if the registry has no "section" parser.
func New(registry *annotation.Registry, opts Options) (*Extractor, error) {
	if registry == nil {
		return nil, ErrNoSectionParser
	}
	if _, ok := registry.Lookup(annotation.KeySection); !ok {
		return nil, ErrNoSectionParser
	}
	registry.Freeze()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Extractor{registry: registry, opts: opts, logger: logger}, nil
}

// Extract returns the blocks documented in src, in source order.
func (e *Extractor) Extract(ctx context.Context, src []byte, file string) ([]annotation.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions, err := e.locate(ctx, src, file)
	if err != nil {
		return nil, err
	}

	var blocks []annotation.Block
	for _, r := range regions {
		b, ok := e.parseRegion(r, file)
		if ok {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func (e *Extractor) locate(ctx context.Context, src []byte, file string) ([]Region, error) {
	locator := e.opts.Locator
	if locator == nil {
		locator = LocatorFor(file)
	}

	regions, err := locator.Locate(ctx, src)
	if err == nil {
		return regions, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if _, isLine := locator.(*LineLocator); isLine {
		return nil, err
	}

	e.logger.Debug("comment locator failed, falling back to line scanner", "file", file, "err", err)
	return (&LineLocator{}).Locate(ctx, src)
}

// pendingAnnotation accumulates the lines of one "@key" entry.
type pendingAnnotation struct {
	key   string
	line  int
	lines []string
}

// parseRegion builds a block from one comment region.
// Returns false when the region holds no annotations or is unsectioned and
// unsectioned blocks are excluded.
func (e *Extractor) parseRegion(r Region, file string) (annotation.Block, bool) {
	var pending []pendingAnnotation

	for i, line := range r.Lines {
		if m := markerPattern.FindStringSubmatch(line); m != nil {
			pending = append(pending, pendingAnnotation{
				key:   m[1],
				line:  r.Line + i,
				lines: []string{m[2]},
			})
			continue
		}
		if len(pending) == 0 {
			continue
		}
		cur := &pending[len(pending)-1]
		cur.lines = append(cur.lines, line)
	}

	if len(pending) == 0 {
		return annotation.Block{}, false
	}

	block := annotation.Block{File: file}
	sectioned := false

	for _, p := range pending {
		text := strings.TrimSpace(strings.Join(p.lines, "\n"))

		var value any = text
		if parser, ok := e.registry.Lookup(p.key); ok {
			value = parser.Parse(p.line, text, &block, file)
		}

		if p.key == annotation.KeySection {
			if s, ok := toSection(value); ok {
				block.Section = s
				sectioned = true
			}
		}

		block.Annotations = append(block.Annotations, annotation.Annotation{
			Key:   p.key,
			Line:  text,
			Value: value,
		})
	}

	if !sectioned {
		if !e.opts.IncludeUnsectioned {
			return annotation.Block{}, false
		}
		block.Section = annotation.Section{ID: fallbackID(&block, file)}
	}

	return block, true
}

// toSection accepts the built-in Section value or a custom parser's string.
func toSection(v any) (annotation.Section, bool) {
	switch s := v.(type) {
	case annotation.Section:
		return s, s.ID != ""
	case *annotation.Section:
		if s == nil {
			return annotation.Section{}, false
		}
		return *s, s.ID != ""
	case string:
		sec := annotation.NewSection(s)
		return sec, sec.ID != ""
	}
	return annotation.Section{}, false
}

// fallbackID names an unsectioned block after its @name, or its file.
func fallbackID(b *annotation.Block, file string) string {
	if id := slugify(b.Name()); id != "" {
		return id
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if id := slugify(base); id != "" {
		return id
	}
	return "untitled"
}

func slugify(s string) string {
	s = slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
