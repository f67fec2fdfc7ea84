// Package annotation defines the comment-block model and the parsers that
// turn a single "@key text" annotation into a structured value.
package annotation

import "strings"

// Annotation is one "@key text" entry of a comment block.
type Annotation struct {
	Key   string // annotation name without the leading "@"
	Line  string // raw text, newline-joined and trimmed for multi-line entries
	Value any    // parser output, or the raw text when no parser is registered
}

// Section locates a block in the documentation hierarchy.
type Section struct {
	Path string // ancestor segments joined by "/"
	ID   string // last segment
}

// Dotted returns the fully-qualified dotted identifier, e.g. "a.b.c".
// A section with an empty path yields its bare ID.
func (s Section) Dotted() string {
	if s.Path == "" {
		return s.ID
	}
	return strings.ReplaceAll(s.Path, "/", ".") + "." + s.ID
}

// Segments returns the path segments followed by the ID.
func (s Section) Segments() []string {
	if s.Path == "" {
		return []string{s.ID}
	}
	return append(strings.Split(s.Path, "/"), s.ID)
}

// Block is one parsed comment block.
type Block struct {
	Annotations []Annotation
	File        string `hash:"ignore"` // originating source, not part of identity
	Section     Section
}

// Get returns the value of the first annotation with the given key.
func (b *Block) Get(key string) any {
	for _, a := range b.Annotations {
		if a.Key == key {
			return a.Value
		}
	}
	return nil
}

// All returns the values of every annotation with the given key, in order.
func (b *Block) All(key string) []any {
	var values []any
	for _, a := range b.Annotations {
		if a.Key == key {
			values = append(values, a.Value)
		}
	}
	return values
}

// Has reports whether the block carries at least one annotation with key.
func (b *Block) Has(key string) bool {
	for _, a := range b.Annotations {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Name returns the block's @name text, or "" when absent.
func (b *Block) Name() string {
	if s, ok := b.Get(KeyName).(string); ok {
		return s
	}
	return ""
}

// Description returns the block's @description text, or "" when absent.
func (b *Block) Description() string {
	if s, ok := b.Get(KeyDescription).(string); ok {
		return s
	}
	return ""
}

// Params returns every @param value of the block.
func (b *Block) Params() []Param {
	var params []Param
	for _, v := range b.All(KeyParam) {
		if p, ok := v.(Param); ok {
			params = append(params, p)
		}
	}
	return params
}

// States returns every @state value of the block.
func (b *Block) States() []State {
	var states []State
	for _, v := range b.All(KeyState) {
		if s, ok := v.(State); ok {
			states = append(states, s)
		}
	}
	return states
}

// Markup returns the first @markup value, or nil.
func (b *Block) Markup() *Markup {
	if m, ok := b.Get(KeyMarkup).(Markup); ok {
		return &m
	}
	return nil
}

// Examples returns every @example value of the block.
func (b *Block) Examples() []Example {
	var examples []Example
	for _, v := range b.All(KeyExample) {
		if e, ok := v.(Example); ok {
			examples = append(examples, e)
		}
	}
	return examples
}

// Type returns the first @type label, or "".
func (b *Block) Type() string {
	if s, ok := b.Get(KeyType).(string); ok {
		return s
	}
	return ""
}
