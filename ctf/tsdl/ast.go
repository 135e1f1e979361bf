package tsdl

import "github.com/simon-lentz/tracegraph/location"

// Document is the root of a parsed TSDL file: a sequence of top-level
// blocks plus typedef/typealias declarations, in source order. Three-pass
// processing (parent linking, semantic check, IR construction) happens in
// package ctf/ir; this package only builds syntax.
type Document struct {
	Items []Item
	Span  location.Span

	// Parent is not set by the parser or by the ir package, whose
	// parent-linking pass records parents in its own map instead.
	Parent Node
}

// Node is implemented by every AST node so the parent-linking pass can walk
// the tree uniformly.
type Node interface {
	NodeSpan() location.Span
}

// Item is one top-level declaration: a Block, a TypedefDecl, or a
// TypealiasDecl.
type Item interface {
	Node
	itemNode()
}

// BlockKind names the six top-level block keywords the grammar recognises.
type BlockKind uint8

const (
	BlockTrace BlockKind = iota
	BlockEnv
	BlockClock
	BlockStream
	BlockEvent
	BlockCallsite
)

func (k BlockKind) String() string {
	switch k {
	case BlockTrace:
		return "trace"
	case BlockEnv:
		return "env"
	case BlockClock:
		return "clock"
	case BlockStream:
		return "stream"
	case BlockEvent:
		return "event"
	case BlockCallsite:
		return "callsite"
	default:
		return "unknown"
	}
}

// Block is one `kind { entries... }` top-level declaration.
type Block struct {
	Kind    BlockKind
	Entries []*Entry
	Span    location.Span
}

func (b *Block) NodeSpan() location.Span { return b.Span }
func (*Block) itemNode()                 {}

// Entry is one `key = value;` statement inside a block.
type Entry struct {
	Key   string
	Value Expr
	Span  location.Span
}

func (e *Entry) NodeSpan() location.Span { return e.Span }

// TypedefDecl is `typedef <type-spec> <name>;`.
type TypedefDecl struct {
	Name string
	Type *TypeExpr
	Span location.Span
}

func (t *TypedefDecl) NodeSpan() location.Span { return t.Span }
func (*TypedefDecl) itemNode()                 {}

// TypealiasDecl is `typealias <type-spec> := <name>;`. The parser accepts
// exactly one name after `:=`, and the type-spec grammar has no named
// struct, enum or variant form; semantic analysis adds no further
// typealias checks.
type TypealiasDecl struct {
	Name string
	Type *TypeExpr
	Span location.Span
}

func (t *TypealiasDecl) NodeSpan() location.Span { return t.Span }
func (*TypealiasDecl) itemNode()                 {}

// Expr is a value expression: a literal, a link expression, or an inline
// type declaration used as a value (e.g. `fields := struct { ... }`).
type Expr interface {
	Node
	exprNode()
}

// LiteralKind discriminates the literal forms a LiteralExpr may hold.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralIdent
)

// LiteralExpr is a bare literal or identifier value.
type LiteralExpr struct {
	Kind LiteralKind
	Text string
	Span location.Span
}

func (e *LiteralExpr) NodeSpan() location.Span { return e.Span }
func (*LiteralExpr) exprNode()                 {}

// LinkKind names the three link operators the grammar recognises between
// segments of a field path expression.
type LinkKind uint8

const (
	LinkDot LinkKind = iota
	LinkArrow
	LinkEllipsis
)

// LinkExpr is a chain of identifier segments joined by '.', '->' or '...',
// used for field-path references (variant tags, dynamic array lengths,
// clock references).
type LinkExpr struct {
	Segments []string
	Kinds    []LinkKind // len(Kinds) == len(Segments)-1
	Span     location.Span
}

func (e *LinkExpr) NodeSpan() location.Span { return e.Span }
func (*LinkExpr) exprNode()                 {}

// TypeExprKind discriminates the field-class declaration forms ("Field
// class variants").
type TypeExprKind uint8

const (
	TypeInteger TypeExprKind = iota
	TypeFloatingPoint
	TypeString
	TypeStruct
	TypeArray
	TypeSequence
	TypeVariant
	TypeEnum
	TypeRef // reference to a name introduced by typedef/typealias
)

// StructMember is one named field inside a `struct { ... }` declaration.
type StructMember struct {
	Name string
	Type *TypeExpr
	Span location.Span
}

// EnumRange is one `label = value` or `label = lo ... hi` mapping inside an
// `enum { ... }` declaration.
type EnumRange struct {
	Label string
	Low   string
	High  string // equal to Low for a single-value mapping
	Span  location.Span
}

// VariantOption is one named alternative inside a `variant { ... }`
// declaration.
type VariantOption struct {
	Name string
	Type *TypeExpr
	Span location.Span
}

// TypeExpr is the syntax tree for one field class declaration. Only the
// fields relevant to Kind are populated; the rest are nil/zero.
type TypeExpr struct {
	Kind TypeExprKind
	Span location.Span

	// Properties are the raw `key = value;` attributes inside an integer,
	// floating_point or enum declaration (bit width, alignment, byte order,
	// base, map clock, exponent/mantissa bits, underlying integer type).
	Properties []*Entry

	// TypeStruct
	Members []*StructMember

	// TypeArray: fixed Length; element class Element.
	Length  int64
	Element *TypeExpr

	// TypeSequence: dynamic length resolved via LengthPath at IR time.
	LengthPath *LinkExpr

	// TypeVariant: selector resolved via TagPath at IR time.
	TagPath *LinkExpr
	Options []*VariantOption

	// TypeEnum
	Ranges []*EnumRange

	// TypeRef
	RefName string
}

func (t *TypeExpr) NodeSpan() location.Span { return t.Span }
func (*TypeExpr) exprNode()                 {}
