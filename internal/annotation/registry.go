package annotation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrRegistryFrozen indicates a parser was registered after extraction started.
var ErrRegistryFrozen = errors.New("parser registry is frozen")

// Registry maps annotation keys to parsers. Registration is last-wins.
// Once frozen the registry is read-only and safe for concurrent lookups.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
	frozen  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// DefaultRegistry returns a registry holding every built-in parser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for key, fn := range map[string]ParserFunc{
		KeyName:        ParseText,
		KeyDescription: ParseText,
		KeyState:       ParseState,
		KeyMarkup:      ParseMarkup,
		KeyParam:       ParseParam,
		KeyType:        ParseType,
		KeyExample:     ParseExample,
		KeySection:     ParseSection,
	} {
		r.parsers[key] = fn
	}
	return r
}

// Register installs p under key, replacing any earlier parser for that key.
func (r *Registry) Register(key string, p Parser) error {
	if key == "" {
		return fmt.Errorf("registering parser: empty key")
	}
	if p == nil {
		return fmt.Errorf("registering parser %q: nil parser", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, key)
	}
	r.parsers[key] = p
	return nil
}

// Merge registers every parser of other on top of r.
func (r *Registry) Merge(other *Registry) error {
	for _, key := range other.Keys() {
		p, _ := other.Lookup(key)
		if err := r.Register(key, p); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the parser registered for key.
func (r *Registry) Lookup(key string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[key]
	return p, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
