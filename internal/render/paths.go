package render

import (
	"path"
	"path/filepath"
	"strings"
)

// Layout decides where a group's page lives.
type Layout struct {
	Flat        bool   // <out>/<group>.html instead of <out>/<group>/index.html
	OutputIndex string // page name for the root group in flat mode
}

const pageIndex = "index.html"

// OutputPath returns the page path for group under outDir.
func (l Layout) OutputPath(outDir, group string) string {
	return filepath.Join(outDir, filepath.FromSlash(l.relPath(group)))
}

// relPath is the slash-separated page path relative to the output root.
func (l Layout) relPath(group string) string {
	switch {
	case group == "" && l.Flat:
		return l.outputIndex()
	case group == "":
		return pageIndex
	case l.Flat:
		return group + ".html"
	default:
		return group + "/" + pageIndex
	}
}

// Href links to group under docRoot. Hierarchical pages link to their
// directory.
func (l Layout) Href(docRoot, group string) string {
	rel := l.relPath(group)
	if !l.Flat {
		rel = strings.TrimSuffix(rel, pageIndex)
	}
	if docRoot == "" {
		return rel
	}
	if rel == "" {
		return strings.TrimSuffix(docRoot, "/") + "/"
	}
	joined := path.Join(docRoot, rel)
	if strings.HasSuffix(rel, "/") {
		joined += "/"
	}
	return joined
}

// Root returns the relative path from group's page back to the output root.
func (l Layout) Root(group string) string {
	depth := strings.Count(l.relPath(group), "/")
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

func (l Layout) outputIndex() string {
	if l.OutputIndex == "" {
		return pageIndex
	}
	return l.OutputIndex
}

// Title is the page heading for a group.
func Title(group string) string {
	if group == "" {
		return "Overview"
	}
	return group
}
