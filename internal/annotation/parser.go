package annotation

import (
	"html"
	"strings"
)

// Built-in annotation keys.
const (
	KeyParam       = "param"
	KeyType        = "type"
	KeyExample     = "example"
	KeySection     = "section"
	KeyName        = "name"
	KeyDescription = "description"
	KeyState       = "state"
	KeyMarkup      = "markup"
)

// ParamSeparator splits @param and @state lines into their segments.
const ParamSeparator = " - "

// Parser converts the text of one annotation into a structured value.
// Implementations must not fail: malformed input degrades to absent fields.
//
// index is the 1-based source line where the annotation starts, block is the
// block parsed so far (earlier annotations only) and file is the source path.
type Parser interface {
	Parse(index int, line string, block *Block, file string) any
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(index int, line string, block *Block, file string) any

// Parse calls f.
func (f ParserFunc) Parse(index int, line string, block *Block, file string) any {
	return f(index, line, block, file)
}

// Param is the value of a @param annotation: "name - description - default".
type Param struct {
	Name        string
	Description *string
	Default     *string
}

// Example is the value of an @example annotation.
type Example struct {
	Example string
}

// State is the value of a @state annotation: ":hover - description".
type State struct {
	Name        string
	Escaped     string // usable as a class list, e.g. "pseudo-class-hover"
	Description string
}

// Markup is the value of a @markup annotation.
type Markup struct {
	Example string
	Escaped string
}

// ParseParam splits line on ParamSeparator into name, description and default.
func ParseParam(_ int, line string, _ *Block, _ string) any {
	parts := strings.Split(strings.TrimSpace(line), ParamSeparator)
	p := Param{Name: parts[0]}
	if len(parts) > 1 {
		p.Description = &parts[1]
	}
	if len(parts) > 2 {
		p.Default = &parts[2]
	}
	return p
}

// ParseType returns the trimmed line as a type label.
func ParseType(_ int, line string, _ *Block, _ string) any {
	return strings.TrimSpace(line)
}

// ParseExample wraps the trimmed line as an Example.
func ParseExample(_ int, line string, _ *Block, _ string) any {
	return Example{Example: strings.TrimSpace(line)}
}

// ParseSection turns a dotted locator such as "forms.button.primary" into
// Section{Path: "forms/button", ID: "primary"}.
func ParseSection(_ int, line string, _ *Block, _ string) any {
	return NewSection(line)
}

// NewSection builds a Section from a dotted identifier.
func NewSection(dotted string) Section {
	slashed := strings.ReplaceAll(strings.TrimSpace(dotted), ".", "/")
	i := strings.LastIndex(slashed, "/")
	if i < 0 {
		return Section{ID: slashed}
	}
	return Section{Path: slashed[:i], ID: slashed[i+1:]}
}

// ParseText returns the trimmed text. Used for @name and @description.
func ParseText(_ int, line string, _ *Block, _ string) any {
	return strings.TrimSpace(line)
}

// ParseState splits a state line into its selector and description.
func ParseState(_ int, line string, _ *Block, _ string) any {
	parts := strings.SplitN(strings.TrimSpace(line), ParamSeparator, 2)
	name := strings.TrimSpace(parts[0])
	s := State{
		Name:    name,
		Escaped: escapeState(name),
	}
	if len(parts) > 1 {
		s.Description = strings.TrimSpace(parts[1])
	}
	return s
}

// escapeState turns ".is-active:hover" into "is-active pseudo-class-hover".
func escapeState(name string) string {
	name = strings.ReplaceAll(name, ".", " ")
	name = strings.ReplaceAll(name, ":", " pseudo-class-")
	return strings.TrimSpace(name)
}

// ParseMarkup keeps the example verbatim and an HTML-escaped copy.
func ParseMarkup(_ int, line string, _ *Block, _ string) any {
	example := strings.TrimSpace(line)
	return Markup{Example: example, Escaped: html.EscapeString(example)}
}

// SplitParser returns a parser that splits the line on sep and names the
// segments after fields. Segments beyond len(fields) are dropped and missing
// segments are left out of the result. An empty sep yields the trimmed line.
func SplitParser(sep string, fields []string) Parser {
	return ParserFunc(func(_ int, line string, _ *Block, _ string) any {
		line = strings.TrimSpace(line)
		if sep == "" || len(fields) == 0 {
			return line
		}
		parts := strings.Split(line, sep)
		out := make(map[string]string, len(fields))
		for i, field := range fields {
			if i >= len(parts) {
				break
			}
			out[field] = strings.TrimSpace(parts[i])
		}
		return out
	})
}
