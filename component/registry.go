package component

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry is a thread-safe, append-only registry of component classes,
// grounded on the teacher's schema.Registry: O(1) lookup by identity, safe
// for concurrent reads after the load phase that populates it. The loaded-
// plugin registry is process-wide and effectively read-only once that
// phase finishes.
type Registry struct {
	mu      sync.RWMutex
	classes map[ClassID]Class
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[ClassID]Class)}
}

// Register adds a class. Returns an error if a class with the same ClassID
// is already registered.
func (r *Registry) Register(c Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[c.id]; exists {
		return fmt.Errorf("component class %s already registered", c.id)
	}
	r.classes[c.id] = c
	return nil
}

// Lookup returns the class for id and whether it was found.
func (r *Registry) Lookup(id ClassID) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[id]
	return c, ok
}

// LookupByName searches across all three kinds for a class with the given
// plugin and class name, returning the match and true if exactly one kind
// registers that pair. This mirrors how the configuration parser refers to
// classes before it knows which kind a name denotes.
func (r *Registry) LookupByName(pluginName, className string) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var match Class
	found := false
	for _, k := range [...]Kind{Source, Filter, Sink} {
		if c, ok := r.classes[ClassID{Kind: k, PluginName: pluginName, ClassName: className}]; ok {
			if found {
				return Class{}, false
			}
			match, found = c, true
		}
	}
	return match, found
}

// All returns every registered class, sorted by ClassID string for
// deterministic output (e.g. the list-plugins verb).
func (r *Registry) All() []Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Class, 0, len(r.classes))
	for _, c := range r.classes {
		result = append(result, c)
	}
	slices.SortFunc(result, func(a, b Class) int {
		return cmp.Compare(a.id.String(), b.id.String())
	})
	return result
}
