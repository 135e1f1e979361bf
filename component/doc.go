// Package component implements the component model: typed
// component classes and instances, their named ports, and the process-wide
// class registry.
//
// Grounded on the teacher's schema package for the registry shape (a
// thread-safe, append-only, name- and key-indexed store, schema.Registry)
// and on schema.TypeID/schema.TypeRef for the (kind, plugin, class) triple
// that identifies a component class uniquely. Unlike a schema Type, a
// component Class is a factory rather than a passive descriptor: creating
// an instance is a first-class operation on the class itself.
package component
