package value

import (
	"fmt"
	"iter"

	"github.com/simon-lentz/tracegraph/diag"
)

// NewArray returns an Array value wrapping a copy of elems, preserving
// insertion order and duplicates.
func NewArray(elems ...Value) Value {
	return newArray(append([]Value(nil), elems...))
}

func newArray(elems []Value) Value {
	c := &container{arr: elems}
	c.refs.Store(1)
	return Value{kind: KindArray, c: c}
}

// Array values have no element-count accessor; [Value.Len] (map.go) counts
// Map entries only and returns 0 for an Array.

// At returns the element at index i and true, or (Null, false) if v is not
// an Array or i is out of range.
func (v Value) At(i int) (Value, bool) {
	if v.kind != KindArray || v.c == nil || i < 0 || i >= len(v.c.arr) {
		return Null, false
	}
	return v.c.arr[i], true
}

// Append adds val to the end of v. Returns [diag.E_FROZEN] if v is frozen,
// or [diag.E_WRONG_KIND] if v is not an Array.
func (v Value) Append(val Value) error {
	if v.kind != KindArray {
		return fmt.Errorf("%w: Append on %s value", diag.E_WRONG_KIND, v.kind)
	}
	if v.IsFrozen() {
		return fmt.Errorf("%w: array is frozen", diag.E_FROZEN)
	}
	v.c.arr = append(v.c.arr, val)
	return nil
}

// Elements returns an iterator over the array's elements in order.
func (v Value) Elements() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if v.kind != KindArray || v.c == nil {
			return
		}
		for _, e := range v.c.arr {
			if !yield(e) {
				return
			}
		}
	}
}
