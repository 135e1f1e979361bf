// Package tsdl implements a hand-written lexer and recursive-descent
// parser for the CTF Trace Stream Description Language: the
// C-like declarative grammar of `trace`/`env`/`clock`/`stream`/`event`/
// `callsite` blocks, `typedef`/`typealias` declarations, and nested field
// class declarations (`struct`, `integer`, `floating_point`, `enum`,
// `variant`, arrays).
//
// Grounded on the shape of the teacher's schema/internal/parse package
// (a Parser type carrying a source ID and a diag.Collector, producing a
// syntax-only AST for a later semantic pass to complete) but with ANTLR
// replaced by a hand-written scanner: this grammar has no existing Go
// parser in the example corpus, and regenerating one from a .g4 file is
// not available in this environment.
package tsdl
