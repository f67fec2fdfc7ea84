package patternlib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/goodtwin/go-patternlib/internal/assets"
	"github.com/goodtwin/go-patternlib/internal/extract"
	"github.com/goodtwin/go-patternlib/internal/fileutil"
	"github.com/goodtwin/go-patternlib/internal/logging"
	"github.com/goodtwin/go-patternlib/internal/navtree"
	"github.com/goodtwin/go-patternlib/internal/render"
	"github.com/goodtwin/go-patternlib/internal/sources"
	"github.com/goodtwin/go-patternlib/internal/styleguide"
)

// HighlightCSSPath is where the code highlighting stylesheet is written,
// relative to the output directory.
const HighlightCSSPath = "assets/css/highlight.css"

// WriteStatus reports what happened to an output file.
type WriteStatus = fileutil.WriteStatus

// Write statuses.
const (
	StatusUnchanged   = fileutil.StatusUnchanged
	StatusCreated     = fileutil.StatusCreated
	StatusOverwritten = fileutil.StatusOverwritten
)

// FileReport describes one scanned source.
type FileReport struct {
	Path   string
	Blocks int
	Size   int
	Cached bool
}

// PageReport describes one rendered group page.
type PageReport struct {
	Group  string
	Path   string
	Size   int
	Status WriteStatus
}

// AssetReport describes one mirrored template asset.
type AssetReport struct {
	Path   string
	Size   int64
	Status WriteStatus
}

// Report summarizes a build.
type Report struct {
	Files    []FileReport
	Blocks   int // after deduplication
	Groups   int
	Pages    []PageReport
	Assets   []AssetReport
	Warnings error // *multierror.Error or nil
	Duration time.Duration
}

// Changed counts pages that were created or overwritten.
func (r *Report) Changed() int {
	n := 0
	for _, p := range r.Pages {
		if p.Status != StatusUnchanged {
			n++
		}
	}
	return n
}

// Builder runs styleguide builds. One build runs at a time per Builder;
// each build gets its own styleguide and template environment.
type Builder struct {
	cfg          Config
	logger       *log.Logger
	extractor    *extract.Extractor
	cache        *ParseCache
	workers      int
	extraParsers []keyedParser

	mu sync.Mutex
}

// NewBuilder validates cfg and prepares the parser registry.
// A nil cfg uses DefaultConfig.
func NewBuilder(cfg *Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:     *cfg,
		logger:  logging.Discard(),
		workers: cfg.Workers,
	}
	for _, opt := range opts {
		opt(b)
	}

	registry, err := NewRegistry(cfg.Parsers)
	if err != nil {
		return nil, err
	}
	for _, p := range b.extraParsers {
		if err := registry.Register(p.key, p.parser); err != nil {
			return nil, fmt.Errorf("registering parser %q: %w", p.key, err)
		}
	}

	b.extractor, err = extract.New(registry, extract.Options{
		IncludeUnsectioned: cfg.KeepUnsectioned(),
		Logger:             b.logger,
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Config returns a copy of the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build scans sources, renders one page per group into outDir and mirrors
// the template assets. Empty sources or outDir fall back to the configured
// values. Missing sources are reported in Report.Warnings; a missing
// template aborts before anything is written.
func (b *Builder) Build(ctx context.Context, srcs []string, outDir string) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	report := &Report{}
	var warnings *multierror.Error

	if len(srcs) == 0 {
		srcs = b.cfg.Sources
	}
	if outDir == "" {
		outDir = b.cfg.Output
	}
	if outDir == "" {
		return nil, ErrNoOutputDir
	}

	loader, tmplSrc, err := b.loadTemplate()
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(render.Options{
		Name:       b.cfg.TemplateIndex,
		Template:   tmplSrc,
		DocRoot:    b.cfg.DocRoot,
		CSSInclude: b.cfg.CSSInclude,
		Project:    loadProject(b.cfg.Project, b.logger),
		Layout:     render.Layout{Flat: b.cfg.Flat, OutputIndex: b.cfg.OutputIndex},
		Logger:     b.logger,
	})
	if err != nil {
		return nil, err
	}

	exp, err := sources.Expand(srcs)
	if err != nil {
		return nil, err
	}
	for _, pattern := range exp.Unmatched {
		warnings = multierror.Append(warnings, fmt.Errorf("%w: no files match %s", ErrSourceNotFound, pattern))
	}

	sg, err := b.collect(ctx, exp.Files, report, &warnings)
	if err != nil {
		return nil, err
	}

	report.Warnings = warnings.ErrorOrNil()
	for _, w := range multierrorList(warnings) {
		b.logger.Warn(w.Error())
	}

	if sg.Len() == 0 {
		b.logger.Info("no documented blocks found, nothing to write")
		report.Duration = time.Since(start)
		return report, nil
	}

	sg.Sort()
	groups := sg.Group()
	nav := navtree.Build(groups)
	report.Blocks = sg.Len()
	report.Groups = len(groups)

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		page, err := renderer.Write(outDir, renderer.Context(g.Path, g.Blocks, nav))
		if err != nil {
			return report, err
		}
		b.logPage(page)
		report.Pages = append(report.Pages, PageReport(page))
	}

	if err := b.writeAssets(loader, outDir, report); err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	b.logger.Info("build finished",
		"blocks", report.Blocks,
		"groups", report.Groups,
		"changed", report.Changed(),
		"took", report.Duration.Round(time.Millisecond))
	return report, nil
}

// loadTemplate resolves the template set and reads its entry file.
func (b *Builder) loadTemplate() (assets.Loader, string, error) {
	loader, err := assets.Resolve(b.cfg.Template)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	src, err := loader.LoadTemplate(b.cfg.TemplateIndex)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return nil, "", fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
		}
		return nil, "", err
	}
	b.logger.Debug("using template", "source", loader.Source(), "entry", b.cfg.TemplateIndex)
	return loader, src, nil
}

// collect extracts every file and unions the blocks in file order.
func (b *Builder) collect(ctx context.Context, files []string, report *Report, warnings **multierror.Error) (*styleguide.Styleguide, error) {
	mode, err := styleguide.ParseDedupeMode(b.cfg.Dedupe)
	if err != nil {
		return nil, err
	}
	sg := styleguide.New(mode)

	results := extractAll(ctx, b.extractor, b.cache, files, ResolvePoolSize(b.workers))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.err != nil {
			if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
				return nil, res.err
			}
			*warnings = multierror.Append(*warnings, res.err)
			continue
		}

		added := sg.Union(res.blocks)
		if len(res.blocks) == 0 && !b.cfg.IncludeEmptyFiles {
			b.logger.Debug("no blocks", "file", res.path)
			continue
		}
		b.logger.Debug("scanned",
			"file", res.path,
			"blocks", len(res.blocks),
			"new", added,
			"size", humanize.Bytes(uint64(res.size)),
			"cached", res.cached)
		report.Files = append(report.Files, FileReport{
			Path:   res.path,
			Blocks: len(res.blocks),
			Size:   res.size,
			Cached: res.cached,
		})
	}
	return sg, nil
}

func (b *Builder) logPage(p render.Page) {
	if p.Status == fileutil.StatusUnchanged {
		b.logger.Debug("page unchanged", "group", p.Group, "path", p.Path)
		return
	}
	b.logger.Debug("page written", "group", p.Group, "path", p.Path, "status", p.Status, "size", humanize.Bytes(uint64(p.Size)))
}

// writeAssets mirrors the template's static files and writes the
// highlighting stylesheet unless the template ships its own.
func (b *Builder) writeAssets(loader assets.Loader, outDir string, report *Report) error {
	copied, err := loader.CopyAssets(outDir, b.cfg.TemplateIndex)
	if err != nil {
		return fmt.Errorf("copying template assets: %w", err)
	}

	highlightPath := filepath.Join(outDir, filepath.FromSlash(HighlightCSSPath))
	shipped := false
	var total int64
	for _, c := range copied {
		report.Assets = append(report.Assets, AssetReport(c))
		total += c.Size
		if c.Path == highlightPath {
			shipped = true
		}
	}

	if !shipped {
		var buf bytes.Buffer
		if err := render.WriteHighlightCSS(&buf); err != nil {
			return fmt.Errorf("generating highlight stylesheet: %w", err)
		}
		status, err := fileutil.WriteIfChanged(highlightPath, buf.Bytes(), 0o644)
		if err != nil {
			return fmt.Errorf("writing highlight stylesheet: %w", err)
		}
		report.Assets = append(report.Assets, AssetReport{Path: highlightPath, Size: int64(buf.Len()), Status: status})
		total += int64(buf.Len())
	}

	b.logger.Debug("mirrored template assets", "files", len(report.Assets), "size", humanize.Bytes(uint64(total)))
	return nil
}

// multierrorList returns the wrapped errors of a possibly nil multierror.
func multierrorList(m *multierror.Error) []error {
	if m == nil {
		return nil
	}
	return m.Errors
}
