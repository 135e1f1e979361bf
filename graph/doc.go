// Package graph validates a candidate set of connections and components
// before any message flows, and drives a validated set to
// completion.
//
// The five validator checks run in a fixed order and stop at the first
// failing check, mirroring the teacher's graph.Result / graph.Duplicate
// pattern (a Result aggregating diagnostics plus first-class types for the
// specific failure shapes) and the teacher's internal/walk DFS traversal
// for cycle detection, generalized from a schema-typed instance graph to
// the much smaller and purely name-addressed connection graph this package
// validates.
//
// [Build] instantiates components, validates their connections, and wires
// ports; [Graph.Run] then polls sinks round-robin until the graph ends, is
// interrupted, or a component fails ("Execution loop").
package graph
