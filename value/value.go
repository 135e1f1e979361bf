package value

import "sync/atomic"

// Kind identifies the semantic type of a Value.
type Kind uint8

const (
	// KindNull is the null value. There is exactly one null Value, [Null].
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// String returns a lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// container is the shared, reference-counted backing store for Array and Map
// values. Copying a Value that wraps a container shares the container
// (explicit aliasing); [Value.DeepCopy] produces an independent container.
type container struct {
	refs   atomic.Int32
	frozen atomic.Bool

	// exactly one of arr/m is populated, selected by the owning Value's Kind.
	arr []Value
	m   *orderedMap
}

// Value is a tagged union over seven kinds: null, bool, int,
// float, string, array, map. It is a small value type for scalars; Array and
// Map values hold a pointer to a shared, ref-counted [container].
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	c    *container
}

// Null is the canonical shared null sentinel. Value holds no pointer for
// null, so == compares fields: any two null Values, including Null itself,
// compare equal.
var Null = Value{kind: KindNull}

// NewBool returns a bool Value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt returns a signed 64-bit integer Value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat returns a 64-bit IEEE-754 float Value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString returns a string Value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the wrapped bool and true if v has KindBool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int returns the wrapped int64 and true if v has KindInt.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the wrapped float64 and true if v has KindFloat.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// String returns the wrapped string and true if v has KindString.
func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// IsFrozen reports whether v (or, for scalars, trivially false) is frozen.
// Scalars have no mutable state and are never frozen; only Array and Map
// containers participate in freezing.
func (v Value) IsFrozen() bool {
	if v.c == nil {
		return false
	}
	return v.c.frozen.Load()
}

// Freeze deep-freezes v: v and every Array/Map value it owns become
// immutable. Freezing is idempotent and has no effect on scalars.
func (v Value) Freeze() {
	if v.c == nil {
		return
	}
	if !v.c.frozen.CompareAndSwap(false, true) {
		return
	}
	switch v.kind {
	case KindArray:
		for _, elem := range v.c.arr {
			elem.Freeze()
		}
	case KindMap:
		for _, child := range v.c.m.values() {
			child.Freeze()
		}
	}
}

// Ref increments the container's reference count and returns v, making the
// aliasing explicit at the call site: `shared := v.Ref()`.
func (v Value) Ref() Value {
	if v.c != nil {
		v.c.refs.Add(1)
	}
	return v
}

// Unref decrements the container's reference count. When the count reaches
// zero, owned children are recursively unref'd (their own containers may
// then also reach zero). Unref is a no-op for scalars and for the shared
// Null. Calling Unref more times than a value was Ref'd (including its
// initial construction, which starts the count at 1) is a programmer error
// and is ignored rather than panicking, since Go's allocator — not this
// count — owns the actual memory.
func (v Value) Unref() {
	if v.c == nil {
		return
	}
	if v.c.refs.Add(-1) != 0 {
		return
	}
	switch v.kind {
	case KindArray:
		for _, elem := range v.c.arr {
			elem.Unref()
		}
	case KindMap:
		for _, child := range v.c.m.values() {
			child.Unref()
		}
	}
}

// DeepCopy returns an independent copy of v. For scalars this is simply v;
// for Array/Map it recursively copies the container so the result shares no
// mutable state with v, and is not frozen even if v is.
func (v Value) DeepCopy() Value {
	switch v.kind {
	case KindArray:
		elems := make([]Value, len(v.c.arr))
		for i, e := range v.c.arr {
			elems[i] = e.DeepCopy()
		}
		return newArray(elems)
	case KindMap:
		cp := newOrderedMap()
		for _, k := range v.c.m.keys {
			val, _ := v.c.m.get(k)
			cp.insert(k, val.DeepCopy())
		}
		return newMapValue(cp)
	default:
		return v
	}
}

// Equal reports deep structural equality between v and other. The shared
// Null compares equal to itself; two distinct empty maps/arrays are equal if
// their elements are equal (insertion order matters for arrays and for map
// iteration but not for map equality: two maps with the same entries in
// different insertion order are still structurally equal).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.c.arr) != len(other.c.arr) {
			return false
		}
		for i, e := range v.c.arr {
			if !e.Equal(other.c.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if v.c.m.len() != other.c.m.len() {
			return false
		}
		for _, k := range v.c.m.keys {
			a, _ := v.c.m.get(k)
			b, ok := other.c.m.get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
