package extract

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
)

// Region is the cleaned content of one comment block.
// Lines[i] sits on source line Line+i.
type Region struct {
	Line  int
	Lines []string
}

// Locator finds comment regions in source text.
type Locator interface {
	Locate(ctx context.Context, src []byte) ([]Region, error)
}

// LocatorFor picks the locator for a file based on its extension.
func LocatorFor(file string) Locator {
	if strings.EqualFold(filepath.Ext(file), ".css") {
		return &TreeSitterLocator{}
	}
	return &LineLocator{}
}

// commentSpan is one raw comment as found in the source, delimiters included.
type commentSpan struct {
	line int // 1-based line of the opening delimiter
	text string
}

func (s commentSpan) isLineComment() bool {
	return strings.HasPrefix(s.text, "//")
}

// LineLocator scans line by line. Block comments must open at the start of a
// line (leading whitespace allowed); "//" comments on consecutive lines merge
// into one region.
type LineLocator struct{}

// Locate implements Locator.
func (l *LineLocator) Locate(ctx context.Context, src []byte) ([]Region, error) {
	var (
		spans   []commentSpan
		open    *commentSpan
		lineNum int
	)

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lineNum++
		if lineNum%512 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		line := scanner.Text()

		if open != nil {
			if idx := strings.Index(line, "*/"); idx >= 0 {
				open.text += "\n" + line[:idx+2]
				spans = append(spans, *open)
				open = nil
			} else {
				open.text += "\n" + line
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "/*"):
			if idx := strings.Index(trimmed[2:], "*/"); idx >= 0 {
				spans = append(spans, commentSpan{line: lineNum, text: trimmed[:idx+4]})
				continue
			}
			open = &commentSpan{line: lineNum, text: trimmed}
		case strings.HasPrefix(trimmed, "//"):
			spans = append(spans, commentSpan{line: lineNum, text: trimmed})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// An unterminated block comment still documents what it holds.
	if open != nil {
		spans = append(spans, *open)
	}

	return regionsFromSpans(spans), nil
}

// regionsFromSpans cleans comment spans into regions, merging "//" comments
// on consecutive lines.
func regionsFromSpans(spans []commentSpan) []Region {
	var regions []Region
	lastLineComment := -1

	for _, s := range spans {
		if s.isLineComment() {
			content := cleanLineComment(s.text)
			if len(regions) > 0 && lastLineComment >= 0 && s.line == lastLineComment+1 {
				r := &regions[len(regions)-1]
				r.Lines = append(r.Lines, content)
			} else {
				regions = append(regions, Region{Line: s.line, Lines: []string{content}})
			}
			lastLineComment = s.line
			continue
		}

		lastLineComment = -1
		regions = append(regions, Region{Line: s.line, Lines: cleanBlockComment(s.text)})
	}
	return regions
}

// cleanLineComment strips the "//" marker (and extra slashes) from a line.
func cleanLineComment(text string) string {
	text = strings.TrimLeft(text, "/")
	return strings.TrimSpace(text)
}

// cleanBlockComment strips "/*", "*/" and leading "*" decorations.
func cleanBlockComment(text string) []string {
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
