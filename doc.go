// Package tracegraph provides a component-graph runtime for converting and
// processing traces, together with a CTF metadata decoder that reconstructs
// trace-class type information from TSDL streams.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//	  - value: Tagged-union, ref-counted value tree
//
//	Graph runtime tier:
//	  - component: Component/port/message model
//	  - connect: Connection argument parsing and glob matching
//	  - graph: Graph validation and scheduling
//
//	CTF decoder tier:
//	  - ctf/packet: Packetized metadata stream framing
//	  - ctf/tsdl: TSDL lexer, parser, and AST
//	  - ctf/fieldpath: Field-path scope resolution
//	  - ctf/trace: Trace-class data model
//	  - ctf/ir: Three-pass AST-to-trace-class reconstruction
//	  - ctf: Top-level decoder orchestration
//
//	Supporting tier:
//	  - ini: INI-style parameter value parsing for component params
//
// # Entry Points
//
// Building and running a graph:
//
//	import "github.com/simon-lentz/tracegraph/graph"
//
//	g, result := graph.Build(source, cfg)
//	if !result.OK() {
//	    // component instantiation or connection errors
//	}
//	status, result := g.Run(graph.NewInterrupter())
//
// Decoding CTF metadata:
//
//	import "github.com/simon-lentz/tracegraph/ctf"
//
//	cls, status, result := ctf.Decode(source, metadataBytes)
//	if status == ctf.Incomplete {
//	    // more metadata bytes are needed; call again with them
//	}
//	if !result.OK() {
//	    // malformed metadata
//	}
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/simon-lentz/tracegraph/diag]: Structured diagnostics
//   - [github.com/simon-lentz/tracegraph/location]: Source location tracking
//   - [github.com/simon-lentz/tracegraph/value]: Value tree
//   - [github.com/simon-lentz/tracegraph/component]: Component/port model
//   - [github.com/simon-lentz/tracegraph/connect]: Connection parsing
//   - [github.com/simon-lentz/tracegraph/graph]: Graph validation and scheduling
//   - [github.com/simon-lentz/tracegraph/ctf]: CTF metadata decoder
package tracegraph
