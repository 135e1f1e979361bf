// Package connect parses `--connect` arguments of the form
// `UP[.UPGLOB]:DOWN[.DOWNGLOB]` into structured [Connection] records, and
// implements the star-glob matcher used to resolve a glob against a
// candidate port name.
//
// The parser is a four-state scanner over the four fields (upstream name,
// upstream glob, downstream name, downstream glob), written in the same
// explicit-position style as [ini.Parse] and the teacher's
// instance/path.Parse. Each field shares one escaping rule, with globs
// additionally recognising the reserved `*`, `?`, `[` characters.
package connect
