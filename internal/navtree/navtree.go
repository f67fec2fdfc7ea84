// Package navtree builds the navigation index for a grouped styleguide.
//
// The tree is keyed by path segment. Intermediate nodes come from group
// paths; leaves come from blocks and point at the owning group's path. A
// node can be both when a block id matches a sub-group name. Children keep
// insertion order so menus follow the styleguide's group order.
package navtree

import (
	"strings"

	"github.com/goodtwin/go-patternlib/internal/styleguide"
)

// Node is one segment of the navigation tree.
type Node struct {
	Name   string
	Target string // group path of the block this leaf points at
	Leaf   bool

	children []*Node
	byName   map[string]*Node
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the named child.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.byName[name]
	return c, ok
}

// HasChildren reports whether n is an intermediate node.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

func (n *Node) child(name string) *Node {
	if c, ok := n.byName[name]; ok {
		return c
	}
	if n.byName == nil {
		n.byName = make(map[string]*Node)
	}
	c := &Node{Name: name}
	n.byName[name] = c
	n.children = append(n.children, c)
	return c
}

// Tree is the navigation index plus a reverse lookup from dotted block id
// to group path. It is read-only once built.
type Tree struct {
	root   *Node
	lookup map[string]string
	groups []string
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{}, lookup: make(map[string]string)}
}

// Build creates the tree for the given groups.
func Build(groups []styleguide.Group) *Tree {
	t := New()
	for _, g := range groups {
		t.groups = append(t.groups, g.Path)
		t.Insert(SplitPath(g.Path))
		for _, b := range g.Blocks {
			t.SetLeaf(b.Section.Segments(), g.Path)
			t.lookup[b.Section.Dotted()] = g.Path
		}
	}
	return t
}

// SplitPath splits a "/"-delimited group path. The empty path has no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Insert walks segments from the root, creating missing nodes, and returns
// the last node (the root for no segments).
func (t *Tree) Insert(segments []string) *Node {
	n := t.root
	for _, s := range segments {
		n = n.child(s)
	}
	return n
}

// SetLeaf marks the node at segments as a leaf pointing at target.
func (t *Tree) SetLeaf(segments []string, target string) *Node {
	n := t.Insert(segments)
	n.Leaf = true
	n.Target = target
	return n
}

// Find returns the node reached by walking segments.
func (t *Tree) Find(segments ...string) (*Node, bool) {
	n := t.root
	for _, s := range segments {
		c, ok := n.Child(s)
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Lookup returns the group path owning the block with the dotted id.
func (t *Tree) Lookup(dotted string) (string, bool) {
	p, ok := t.lookup[dotted]
	return p, ok
}

// Groups returns the group paths in build order.
func (t *Tree) Groups() []string {
	return t.groups
}

// Map renders the tree as nested maps: intermediate nodes map to maps and
// leaves to their target. A node that is both keeps its children.
func (t *Tree) Map() map[string]any {
	return toMap(t.root)
}

func toMap(n *Node) map[string]any {
	m := make(map[string]any, len(n.children))
	for _, c := range n.children {
		if c.HasChildren() || !c.Leaf {
			m[c.Name] = toMap(c)
			continue
		}
		m[c.Name] = c.Target
	}
	return m
}
