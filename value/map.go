package value

import (
	"fmt"
	"iter"

	"github.com/simon-lentz/tracegraph/diag"
)

// orderedMap is the backing store for a KindMap container: insertion-ordered,
// duplicate keys forbidden. Grounded on the teacher's immutable.Map,
// generalized from an unordered Go map[K]Value to an insertion-ordered
// structure, since the spec requires "maps preserve insertion order".
type orderedMap struct {
	keys    []string
	entries map[string]Value
}

func newOrderedMap() *orderedMap {
	return &orderedMap{entries: make(map[string]Value)}
}

func (m *orderedMap) len() int { return len(m.keys) }

func (m *orderedMap) get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// insert adds or replaces the entry for key. Mutable-map semantics: a
// replace of an existing key is allowed ("Insertion into a map with an
// existing key replaces the entry for mutable maps").
func (m *orderedMap) insert(key string, v Value) {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

func (m *orderedMap) values() []Value {
	out := make([]Value, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.entries[k]
	}
	return out
}

// NewMap returns an empty Map value.
func NewMap() Value {
	return newMapValue(newOrderedMap())
}

func newMapValue(m *orderedMap) Value {
	c := &container{m: m}
	c.refs.Store(1)
	return Value{kind: KindMap, c: c}
}

// Len returns the number of entries. Returns 0 for a non-Map value.
func (v Value) Len() int {
	if v.kind != KindMap || v.c == nil {
		return 0
	}
	return v.c.m.len()
}

// Get returns the entry for key and true if present. Returns (Null, false)
// if v is not a Map or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap || v.c == nil {
		return Null, false
	}
	return v.c.m.get(key)
}

// Insert adds or replaces the entry for key. Returns [diag.E_FROZEN] if v is
// frozen, or [diag.E_WRONG_KIND] if v is not a Map.
func (v Value) Insert(key string, val Value) error {
	if v.kind != KindMap {
		return fmt.Errorf("%w: Insert on %s value", diag.E_WRONG_KIND, v.kind)
	}
	if v.IsFrozen() {
		return fmt.Errorf("%w: map is frozen", diag.E_FROZEN)
	}
	v.c.m.insert(key, val)
	return nil
}

// Keys returns an iterator over the map's keys in insertion order.
func (v Value) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if v.kind != KindMap || v.c == nil {
			return
		}
		for _, k := range v.c.m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Entries returns an iterator over key-value pairs in insertion order.
func (v Value) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindMap || v.c == nil {
			return
		}
		for _, k := range v.c.m.keys {
			if !yield(k, v.c.m.entries[k]) {
				return
			}
		}
	}
}

// Extend merges other's entries into v; later (other's) entries override
// earlier (v's) entries for shared keys ("map extend; later
// overrides earlier"). Both v and other must be Map values. Returns
// [diag.E_FROZEN] if v is frozen.
func (v Value) Extend(other Value) error {
	if v.kind != KindMap || other.kind != KindMap {
		return fmt.Errorf("%w: Extend requires two Map values", diag.E_WRONG_KIND)
	}
	if v.IsFrozen() {
		return fmt.Errorf("%w: map is frozen", diag.E_FROZEN)
	}
	for _, k := range other.c.m.keys {
		v.c.m.insert(k, other.c.m.entries[k])
	}
	return nil
}
