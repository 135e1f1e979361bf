// Package ir implements three-pass AST processing: parent
// linking, semantic checking, and IR construction, turning a parsed
// [tsdl.Document] into a [trace.Class].
//
// The three passes are kept as separate functions (linkParents,
// checkSemantics, and the builder's build method) even though build also
// performs some of the validation checkSemantics already covers, mirroring the teacher's
// layered schema.Registry/complete package split between structural
// completion and invariant validation, generalized to CTF's grammar.
package ir
