// Package styleguide aggregates blocks from many files into one
// deduplicated, sorted and grouped collection.
package styleguide

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/goodtwin/go-patternlib/internal/annotation"
)

// IndexID is the section id that always sorts first.
const IndexID = "index"

// DedupeMode selects the identity used to collapse duplicate blocks.
type DedupeMode string

// Dedupe modes.
const (
	// DedupeContent collapses structurally identical blocks, whatever file
	// they came from.
	DedupeContent DedupeMode = "content"

	// DedupeSource collapses blocks sharing file and section only.
	DedupeSource DedupeMode = "source"
)

// ErrInvalidDedupeMode indicates an unknown dedupe mode name.
var ErrInvalidDedupeMode = errors.New("invalid dedupe mode")

// ParseDedupeMode converts a config value. Empty means DedupeContent.
func ParseDedupeMode(s string) (DedupeMode, error) {
	switch DedupeMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DedupeContent:
		return DedupeContent, nil
	case DedupeSource:
		return DedupeSource, nil
	}
	return "", fmt.Errorf("%w: %q (must be content or source)", ErrInvalidDedupeMode, s)
}

// Group is the ordered set of blocks sharing one section path.
type Group struct {
	Path   string
	Blocks []annotation.Block
}

// Styleguide is the aggregate for one build. It is not safe for concurrent
// mutation; each build owns its own instance.
type Styleguide struct {
	mode   DedupeMode
	blocks []annotation.Block

	byHash   map[uint64][]annotation.Block
	bySource map[string]struct{}
}

// New returns an empty Styleguide.
func New(mode DedupeMode) *Styleguide {
	if mode == "" {
		mode = DedupeContent
	}
	return &Styleguide{
		mode:     mode,
		byHash:   make(map[uint64][]annotation.Block),
		bySource: make(map[string]struct{}),
	}
}

// Union appends blocks in order, skipping any already present.
// Returns the number of blocks added.
func (s *Styleguide) Union(blocks []annotation.Block) int {
	added := 0
	for _, b := range blocks {
		if s.seen(b) {
			continue
		}
		s.blocks = append(s.blocks, b)
		added++
	}
	return added
}

// seen reports whether b duplicates a known block, recording it if not.
func (s *Styleguide) seen(b annotation.Block) bool {
	if s.mode == DedupeSource {
		key := b.File + "\x00" + b.Section.Path + "\x00" + b.Section.ID
		if _, ok := s.bySource[key]; ok {
			return true
		}
		s.bySource[key] = struct{}{}
		return false
	}

	h, err := hashstructure.Hash(b, hashstructure.FormatV2, nil)
	if err != nil {
		// Unhashable parser output: fall back to a linear scan.
		for _, known := range s.blocks {
			if sameContent(known, b) {
				return true
			}
		}
		return false
	}

	for _, known := range s.byHash[h] {
		if sameContent(known, b) {
			return true
		}
	}
	s.byHash[h] = append(s.byHash[h], b)
	return false
}

// sameContent compares everything but the originating file.
func sameContent(a, b annotation.Block) bool {
	return a.Section == b.Section && reflect.DeepEqual(a.Annotations, b.Annotations)
}

// Sort orders blocks by section id, then moves "index" blocks to the front.
// Both passes are stable.
func (s *Styleguide) Sort() {
	slices.SortStableFunc(s.blocks, func(a, b annotation.Block) int {
		return strings.Compare(a.Section.ID, b.Section.ID)
	})
	slices.SortStableFunc(s.blocks, func(a, b annotation.Block) int {
		return indexRank(a) - indexRank(b)
	})
}

func indexRank(b annotation.Block) int {
	if b.Section.ID == IndexID {
		return 0
	}
	return 1
}

// Group partitions the current block order by section path. Groups appear in
// order of the first block carrying each path.
func (s *Styleguide) Group() []Group {
	var groups []Group
	pos := make(map[string]int)

	for _, b := range s.blocks {
		i, ok := pos[b.Section.Path]
		if !ok {
			i = len(groups)
			pos[b.Section.Path] = i
			groups = append(groups, Group{Path: b.Section.Path})
		}
		groups[i].Blocks = append(groups[i].Blocks, b)
	}
	return groups
}

// Blocks returns a copy of the current block order.
func (s *Styleguide) Blocks() []annotation.Block {
	return slices.Clone(s.blocks)
}

// Len returns the number of distinct blocks.
func (s *Styleguide) Len() int {
	return len(s.blocks)
}
