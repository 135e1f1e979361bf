// Package fieldpath resolves the field-path expressions used by variant
// selectors and dynamic-array lengths, during the decoder's IR construction pass, to
// a concrete field class. Scopes visible from a given field class form a
// fixed lookup order: packet header, packet context, event header, event
// stream context, event context, event payload; a path may only reference
// a field in its own scope or in a scope strictly before it in that order.
// The position of the target within the same scope is not checked.
//
// Grounded on the teacher's instance/path package: both build an immutable
// path value and resolve it by walking a tree of named members, though
// this package resolves against [Resolvable] rather than a JSON-like
// value tree.
package fieldpath
