package tsdl

import (
	"strconv"

	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// Parser consumes a token stream from a [Lexer] and builds a [Document].
// Errors are collected rather than returned, so the caller can keep
// whatever partial tree was built and decide, per the decoder's failure modes,
// whether to treat the result as INCOMPLETE (retry with more bytes) or a
// hard error.
type Parser struct {
	source location.SourceID
	lex    *Lexer
	tok    Token
	errs   diag.Collector
}

// NewParser returns a Parser over src.
func NewParser(source location.SourceID, src string) *Parser {
	lex := NewLexer(source, src)
	p := &Parser{source: source, lex: lex}
	p.tok = lex.Next()
	return p
}

// Errors returns every diagnostic collected during lexing and parsing.
func (p *Parser) Errors() diag.Result {
	var merged diag.Collector
	merged.Merge(p.lex.Errors())
	merged.Merge(p.errs.Result())
	return merged.Result()
}

func (p *Parser) advance() Token {
	cur := p.tok
	p.tok = p.lex.Next()
	return cur
}

// fail records a parse error at the current token. When the current token
// is TokEOF, the input simply ran out before the grammar was satisfied and
// more bytes might complete it, so the issue is tagged E_DECODER_INCOMPLETE;
// any other unexpected token is a genuine grammar violation that no amount
// of additional input will fix, tagged E_DECODER_SYNTAX.
func (p *Parser) fail(message string) {
	code := diag.E_DECODER_SYNTAX
	if p.tok.Kind == TokEOF {
		code = diag.E_DECODER_INCOMPLETE
	}
	p.errs.Collect(diag.NewIssue(diag.Error, code, message).
		WithSpan(p.tok.Span).
		WithSourceName(p.source.String()).
		Build())
}

func (p *Parser) expect(kind TokenKind) (Token, bool) {
	if p.tok.Kind != kind {
		p.fail("expected " + kind.String() + ", got " + p.tok.Kind.String())
		return Token{}, false
	}
	return p.advance(), true
}

func (p *Parser) expectIdent() (string, location.Span, bool) {
	if p.tok.Kind != TokIdent {
		p.fail("expected identifier, got " + p.tok.Kind.String())
		return "", location.Span{}, false
	}
	tok := p.advance()
	return tok.Text, tok.Span, true
}

// Parse parses the entire token stream into a Document.
func (p *Parser) Parse() *Document {
	start := p.tok.Span
	doc := &Document{}
	for p.tok.Kind != TokEOF {
		item := p.parseItem()
		if item == nil {
			// Parsing could not recover; stop so the caller sees the partial
			// document alongside the collected diagnostics.
			break
		}
		doc.Items = append(doc.Items, item)
	}
	doc.Span = joinSpan(start, p.tok.Span)
	return doc
}

func (p *Parser) parseItem() Item {
	if p.tok.Kind != TokIdent {
		p.fail("expected a top-level block or declaration")
		return nil
	}
	switch p.tok.Text {
	case "trace":
		return p.parseBlock(BlockTrace)
	case "env":
		return p.parseBlock(BlockEnv)
	case "clock":
		return p.parseBlock(BlockClock)
	case "stream":
		return p.parseBlock(BlockStream)
	case "event":
		return p.parseBlock(BlockEvent)
	case "callsite":
		return p.parseBlock(BlockCallsite)
	case "typedef":
		return p.parseTypedef()
	case "typealias":
		return p.parseTypealias()
	default:
		p.fail("unexpected top-level identifier "+strconv.Quote(p.tok.Text))
		return nil
	}
}

func (p *Parser) parseBlock(kind BlockKind) *Block {
	start := p.tok.Span
	p.advance() // keyword
	if _, ok := p.expect(TokLBrace); !ok {
		return nil
	}

	var entries []*Entry
	for p.tok.Kind != TokRBrace && p.tok.Kind != TokEOF {
		e := p.parseEntry()
		if e == nil {
			break
		}
		entries = append(entries, e)
	}
	end, _ := p.expect(TokRBrace)
	if p.tok.Kind == TokSemi {
		p.advance()
	}
	return &Block{Kind: kind, Entries: entries, Span: joinSpan(start, end.Span)}
}

// parseDottedKey parses an entry key, joining a dotted chain such as
// `event.header` or `stream.packet.context` into a single dot-joined string.
// Unlike a link expression's chain, a key's segments are never separated by
// '->' or '...'.
func (p *Parser) parseDottedKey() (string, location.Span, bool) {
	name, span, ok := p.expectIdent()
	if !ok {
		return "", span, false
	}
	for p.tok.Kind == TokDot {
		p.advance()
		seg, segSpan, ok := p.expectIdent()
		if !ok {
			return name, span, false
		}
		name += "." + seg
		span = joinSpan(span, segSpan)
	}
	return name, span, true
}

func (p *Parser) parseEntry() *Entry {
	start := p.tok.Span
	key, _, ok := p.parseDottedKey()
	if !ok {
		return nil
	}
	if p.tok.Kind != TokEquals && p.tok.Kind != TokColonEq {
		p.fail("expected '=' or ':=' after "+strconv.Quote(key))
		return nil
	}
	p.advance()

	val := p.parseExpr()
	if val == nil {
		return nil
	}
	end, ok := p.expect(TokSemi)
	if !ok {
		return nil
	}
	return &Entry{Key: key, Value: val, Span: joinSpan(start, end.Span)}
}

func (p *Parser) parseTypedef() *TypedefDecl {
	start := p.tok.Span
	p.advance() // "typedef"
	typ := p.parseTypeExprOnly()
	if typ == nil {
		return nil
	}
	name, _, ok := p.expectIdent()
	if !ok {
		return nil
	}
	end, ok := p.expect(TokSemi)
	if !ok {
		return nil
	}
	return &TypedefDecl{Name: name, Type: typ, Span: joinSpan(start, end.Span)}
}

func (p *Parser) parseTypealias() *TypealiasDecl {
	start := p.tok.Span
	p.advance() // "typealias"
	typ := p.parseTypeExprOnly()
	if typ == nil {
		return nil
	}
	if _, ok := p.expect(TokColonEq); !ok {
		return nil
	}
	name, _, ok := p.expectIdent()
	if !ok {
		return nil
	}
	end, ok := p.expect(TokSemi)
	if !ok {
		return nil
	}
	return &TypealiasDecl{Name: name, Type: typ, Span: joinSpan(start, end.Span)}
}

// parseExpr parses one value expression: a literal, a link expression, or
// an inline type declaration, applying a trailing array/sequence suffix
// when present.
func (p *Parser) parseExpr() Expr {
	switch p.tok.Kind {
	case TokString:
		tok := p.advance()
		return &LiteralExpr{Kind: LiteralString, Text: tok.Text, Span: tok.Span}
	case TokInt:
		tok := p.advance()
		return &LiteralExpr{Kind: LiteralInt, Text: tok.Text, Span: tok.Span}
	case TokFloat:
		tok := p.advance()
		return &LiteralExpr{Kind: LiteralFloat, Text: tok.Text, Span: tok.Span}
	case TokIdent:
		if typ := p.tryParseTypeExpr(); typ != nil {
			return p.maybeArraySuffix(typ)
		}
		return p.parseLinkOrIdent()
	case TokMinus:
		return p.parseNegativeNumber()
	default:
		p.fail("expected a value expression")
		return nil
	}
}

// parseNegativeNumber parses a unary-minus integer or float literal, the
// only unary-expr form TSDL's grammar allows (e.g. `align = -1;` or an
// enumerator range starting below zero).
func (p *Parser) parseNegativeNumber() Expr {
	minus := p.advance() // '-'
	switch p.tok.Kind {
	case TokInt:
		tok := p.advance()
		return &LiteralExpr{Kind: LiteralInt, Text: "-" + tok.Text, Span: joinSpan(minus.Span, tok.Span)}
	case TokFloat:
		tok := p.advance()
		return &LiteralExpr{Kind: LiteralFloat, Text: "-" + tok.Text, Span: joinSpan(minus.Span, tok.Span)}
	default:
		p.fail("expected a number after '-'")
		return nil
	}
}

// parseTypeExprOnly requires the next tokens to form a type declaration
// (used by typedef/typealias, which never take a bare literal value).
func (p *Parser) parseTypeExprOnly() *TypeExpr {
	typ := p.tryParseTypeExpr()
	if typ == nil {
		// A typedef/typealias may also just name a previously declared type.
		name, span, ok := p.expectIdent()
		if !ok {
			return nil
		}
		typ = &TypeExpr{Kind: TypeRef, RefName: name, Span: span}
	}
	return p.maybeArraySuffix(typ)
}

func (p *Parser) tryParseTypeExpr() *TypeExpr {
	if p.tok.Kind != TokIdent {
		return nil
	}
	switch p.tok.Text {
	case "struct":
		return p.parseStructType()
	case "integer":
		return p.parseIntegerType()
	case "floating_point":
		return p.parseFloatingPointType()
	case "string":
		return p.parseStringType()
	case "enum":
		return p.parseEnumType()
	case "variant":
		return p.parseVariantType()
	default:
		return nil
	}
}

func (p *Parser) maybeArraySuffix(elem *TypeExpr) *TypeExpr {
	for p.tok.Kind == TokLBracket {
		start := p.tok.Span
		p.advance()
		if p.tok.Kind == TokInt {
			lenTok := p.advance()
			n, err := strconv.ParseInt(lenTok.Text, 0, 64)
			if err != nil {
				p.fail("invalid array length "+strconv.Quote(lenTok.Text))
				return elem
			}
			end, ok := p.expect(TokRBracket)
			if !ok {
				return elem
			}
			elem = &TypeExpr{Kind: TypeArray, Length: n, Element: elem, Span: joinSpan(start, end.Span)}
			continue
		}
		link := p.parseLinkExpr()
		end, ok := p.expect(TokRBracket)
		if !ok {
			return elem
		}
		elem = &TypeExpr{Kind: TypeSequence, LengthPath: link, Element: elem, Span: joinSpan(start, end.Span)}
	}
	return elem
}

func (p *Parser) parseStructType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "struct"
	if _, ok := p.expect(TokLBrace); !ok {
		return nil
	}
	var members []*StructMember
	for p.tok.Kind != TokRBrace && p.tok.Kind != TokEOF {
		e := p.parseEntry()
		if e == nil {
			break
		}
		typ := exprAsType(e.Value)
		if typ == nil {
			p.fail("struct member "+strconv.Quote(e.Key)+" must name a field class")
			break
		}
		members = append(members, &StructMember{Name: e.Key, Type: typ, Span: e.Span})
	}
	end, _ := p.expect(TokRBrace)
	return &TypeExpr{Kind: TypeStruct, Members: members, Span: joinSpan(start, end.Span)}
}

func (p *Parser) parsePropertyList() []*Entry {
	if _, ok := p.expect(TokLBrace); !ok {
		return nil
	}
	var entries []*Entry
	for p.tok.Kind != TokRBrace && p.tok.Kind != TokEOF {
		e := p.parseEntry()
		if e == nil {
			break
		}
		entries = append(entries, e)
	}
	p.expect(TokRBrace)
	return entries
}

func (p *Parser) parseIntegerType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "integer"
	props := p.parsePropertyList()
	return &TypeExpr{Kind: TypeInteger, Properties: props, Span: joinSpan(start, p.tok.Span)}
}

func (p *Parser) parseFloatingPointType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "floating_point"
	props := p.parsePropertyList()
	return &TypeExpr{Kind: TypeFloatingPoint, Properties: props, Span: joinSpan(start, p.tok.Span)}
}

func (p *Parser) parseStringType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "string"
	var props []*Entry
	if p.tok.Kind == TokLBrace {
		props = p.parsePropertyList()
	}
	return &TypeExpr{Kind: TypeString, Properties: props, Span: joinSpan(start, p.tok.Span)}
}

func (p *Parser) parseEnumType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "enum"

	var underlying *TypeExpr
	if p.tok.Kind == TokColon {
		p.advance()
		underlying = p.tryParseTypeExpr()
		if underlying == nil {
			// Not an inline integer { ... }: the underlying type names a
			// previously declared typedef/typealias instead.
			name, span, ok := p.expectIdent()
			if !ok {
				return nil
			}
			underlying = &TypeExpr{Kind: TypeRef, RefName: name, Span: span}
		}
	}

	if _, ok := p.expect(TokLBrace); !ok {
		return nil
	}
	var ranges []*EnumRange
	for p.tok.Kind != TokRBrace && p.tok.Kind != TokEOF {
		r := p.parseEnumRange()
		if r == nil {
			break
		}
		ranges = append(ranges, r)
		if p.tok.Kind == TokComma {
			p.advance()
		}
	}
	end, _ := p.expect(TokRBrace)

	result := &TypeExpr{Kind: TypeEnum, Ranges: ranges, Span: joinSpan(start, end.Span)}
	if underlying != nil {
		result.Element = underlying
	}
	return result
}

func (p *Parser) parseEnumRange() *EnumRange {
	start := p.tok.Span
	label, _, ok := p.expectIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(TokEquals); !ok {
		return nil
	}
	low, lowSpan, ok := p.parseEnumBound()
	if !ok {
		return nil
	}
	high := low
	if p.tok.Kind == TokEllipsis {
		p.advance()
		var ok bool
		high, _, ok = p.parseEnumBound()
		if !ok {
			return nil
		}
	}
	end, ok := p.expect(TokSemi)
	if !ok {
		return &EnumRange{Label: label, Low: low, High: high, Span: joinSpan(start, lowSpan)}
	}
	return &EnumRange{Label: label, Low: low, High: high, Span: joinSpan(start, end.Span)}
}

// parseEnumBound parses one enumerator-range endpoint: an integer literal,
// optionally preceded by unary minus, since enumerator ranges may begin
// below zero.
func (p *Parser) parseEnumBound() (string, location.Span, bool) {
	if p.tok.Kind == TokMinus {
		minus := p.advance()
		tok, ok := p.expect(TokInt)
		if !ok {
			return "", minus.Span, false
		}
		return "-" + tok.Text, joinSpan(minus.Span, tok.Span), true
	}
	tok, ok := p.expect(TokInt)
	if !ok {
		return "", tok.Span, false
	}
	return tok.Text, tok.Span, true
}

func (p *Parser) parseVariantType() *TypeExpr {
	start := p.tok.Span
	p.advance() // "variant"

	var tagPath *LinkExpr
	if p.tok.Kind == TokLAngle {
		p.advance()
		tagPath = p.parseLinkExpr()
		p.expect(TokRAngle)
	}

	if _, ok := p.expect(TokLBrace); !ok {
		return nil
	}
	var options []*VariantOption
	for p.tok.Kind != TokRBrace && p.tok.Kind != TokEOF {
		e := p.parseEntry()
		if e == nil {
			break
		}
		typ := exprAsType(e.Value)
		if typ == nil {
			p.fail("variant option "+strconv.Quote(e.Key)+" must name a field class")
			break
		}
		options = append(options, &VariantOption{Name: e.Key, Type: typ, Span: e.Span})
	}
	end, _ := p.expect(TokRBrace)
	return &TypeExpr{Kind: TypeVariant, TagPath: tagPath, Options: options, Span: joinSpan(start, end.Span)}
}

// parseLinkOrIdent parses a chain of identifiers joined by '.', '->' or
// '...'. A chain of length one is a bare identifier value rather than a
// field-path reference.
func (p *Parser) parseLinkOrIdent() Expr {
	link := p.parseLinkExpr()
	if link == nil {
		return nil
	}
	if len(link.Segments) == 1 {
		return &LiteralExpr{Kind: LiteralIdent, Text: link.Segments[0], Span: link.Span}
	}
	return link
}

func (p *Parser) parseLinkExpr() *LinkExpr {
	name, span, ok := p.expectIdent()
	if !ok {
		return nil
	}
	link := &LinkExpr{Segments: []string{name}, Span: span}
	for {
		var kind LinkKind
		switch p.tok.Kind {
		case TokDot:
			kind = LinkDot
		case TokArrow:
			kind = LinkArrow
		case TokEllipsis:
			kind = LinkEllipsis
		default:
			return link
		}
		p.advance()
		seg, segSpan, ok := p.expectIdent()
		if !ok {
			return link
		}
		link.Kinds = append(link.Kinds, kind)
		link.Segments = append(link.Segments, seg)
		link.Span = joinSpan(link.Span, segSpan)
	}
}

// exprAsType coerces an Expr produced by parseExpr into a *TypeExpr,
// resolving a bare identifier to a named type reference.
func exprAsType(e Expr) *TypeExpr {
	switch v := e.(type) {
	case *TypeExpr:
		return v
	case *LiteralExpr:
		if v.Kind == LiteralIdent {
			return &TypeExpr{Kind: TypeRef, RefName: v.Text, Span: v.Span}
		}
	}
	return nil
}
