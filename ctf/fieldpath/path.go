package fieldpath

import (
	"strings"

	"github.com/simon-lentz/tracegraph/ctf/tsdl"
	"github.com/simon-lentz/tracegraph/location"
)

// Path is a resolved field-path expression: a scope plus the chain of
// struct member names to walk within that scope's root field class.
type Path struct {
	Scope    Scope
	Segments []string
	Span     location.Span
}

func (p Path) String() string {
	return p.Scope.String() + ":" + strings.Join(p.Segments, ".")
}

// FromLink converts a TSDL link expression into a Path. It recognises the
// conventional scope-keyword prefixes (`stream.packet.context...`,
// `event.fields...`, etc.); a link with none of those prefixes is resolved
// relative to defaultScope (the scope the referencing field class itself
// lives in), per the teacher's builder idiom of defaulting unqualified
// references to the current context.
func FromLink(link *tsdl.LinkExpr, defaultScope Scope) Path {
	segs := link.Segments
	for _, kp := range knownPrefixes {
		if matchPrefix(kp.segments, segs) {
			return Path{Scope: kp.scope, Segments: segs[len(kp.segments):], Span: link.Span}
		}
	}
	return Path{Scope: defaultScope, Segments: segs, Span: link.Span}
}

// Resolvable is implemented by a field class that field-path resolution
// can walk into: structures resolve named members, everything else is a
// leaf.
type Resolvable interface {
	// Member looks up a direct child by name, as struct classes do.
	Member(name string) (Resolvable, bool)
	// IsInteger reports whether this leaf is an integer field class. The
	// IR builder requires it of dynamic-array length targets; variant
	// selector targets are not checked for their kind.
	IsInteger() bool
}

// Scopes maps each scope visible at some point in a trace class to its
// resolved root field class. A scope absent from the map means no field
// class occupies it at this point (e.g. a stream class with no packet
// context).
type Scopes map[Scope]Resolvable

// Resolve walks p starting from its scope's root in scopes, requiring that
// scope be the same as current or strictly earlier (the scope-order
// invariant), and returns the leaf Resolvable the path designates.
func Resolve(current Scope, scopes Scopes, p Path) (Resolvable, bool) {
	if p.Scope != current && !p.Scope.Before(current) {
		return nil, false
	}
	root, ok := scopes[p.Scope]
	if !ok {
		return nil, false
	}
	node := root
	for _, seg := range p.Segments {
		child, ok := node.Member(seg)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}
