// Package value implements the dynamic, JSON-like value tree used uniformly
// for component parameters, query inputs and discovered results (the value
// specification).
//
// # Design Principles
//
// Grounded on the teacher's `immutable` package (recursive wrapping at
// construction time, iterator-first access, zero-cost primitive reads) but
// generalized from "wrap an arbitrary Go value" to an explicit seven-kind
// tagged union, because the specification requires properties the teacher's
// reflect-based wrapper does not provide:
//
//   - A single shared Null sentinel; null Values compare equal with ==.
//   - Insertion-ordered maps that reject duplicate keys during parsing but
//     allow later inserts to replace an existing entry (map "extend").
//   - Arrays that preserve insertion order and permit duplicates.
//   - Explicit reference counting: [Value.Ref] and [Value.Unref] manage a
//     container's lifetime; dropping the last reference releases owned
//     children. Go's garbage collector still owns the underlying memory —
//     this is a logical resource-lifetime API layered on top of it, the way
//     the spec's "ref-counted; aliasing is explicit" requirement asks for.
//   - Deep freezing: [Value.Freeze] marks a value and its owned children
//     immutable; any subsequent mutating call returns [diag.E_FROZEN].
//
// # Kinds
//
// A [Value] is one of: Null, Bool, Int, Float, String, Array, Map. Integers
// are signed 64-bit; floats are 64-bit IEEE-754. [Kind] is the discriminant;
// match on it via [Value.Kind] rather than type-asserting the zero value.
package value
