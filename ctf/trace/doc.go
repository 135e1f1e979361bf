// Package trace holds the reconstructed type system of a CTF trace: clock
// classes, stream classes, event classes and the field-class tagged union.
// Package ctf/ir builds values of these types from a parsed TSDL document;
// this package only carries data.
package trace
