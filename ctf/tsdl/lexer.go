package tsdl

import (
	"strings"

	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// Lexer scans TSDL source into a Token stream. It is case-sensitive, skips
// whitespace, and strips `/* ... */` and `// ...` comments.
type Lexer struct {
	source   location.SourceID
	src      string
	pos      int
	line     int
	col      int
	errs     diag.Collector
}

// NewLexer returns a Lexer over src, whose positions are reported against
// source.
func NewLexer(source location.SourceID, src string) *Lexer {
	return &Lexer{source: source, src: src, line: 1, col: 1}
}

// Errors returns the lexical diagnostics accumulated so far.
func (l *Lexer) Errors() diag.Result { return l.errs.Result() }

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) here() location.Span {
	return location.PointWithByte(l.source, l.line, l.col, l.pos)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			l.advance()
		case b == '/' && l.peekByteAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.peekByteAt(1) == '/') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		case b == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in the stream. At end of input it returns an
// endless stream of TokEOF tokens.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Span: l.here()}
	}

	start := l.here()
	b := l.peekByte()

	switch {
	case isIdentStart(b):
		return l.scanIdent(start)
	case isDigit(b):
		return l.scanNumber(start)
	case b == '"':
		return l.scanString(start)
	default:
		return l.scanPunct(start)
	}
}

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// scanIdent consumes an identifier: [A-Za-z_][A-Za-z0-9_:-]*. '-' is
// absorbed unless it starts the two-character link operator '->', which is
// lexed as a separate token. '.' is never absorbed: it is always its own
// token (TokDot, or TokEllipsis for '...'), so a dotted chain like
// `event.fields.count` reaches the parser as alternating identifier and dot
// tokens rather than one fused identifier.
func (l *Lexer) scanIdent(start location.Span) Token {
	var sb strings.Builder
	sb.WriteByte(l.advance())
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == '-' && l.peekByteAt(1) == '>':
			goto done
		case isIdentStart(b) || isDigit(b) || b == '-' || b == ':':
			sb.WriteByte(l.advance())
		default:
			goto done
		}
	}
done:
	return Token{Kind: TokIdent, Text: sb.String(), Span: joinSpan(start, l.here())}
}

func (l *Lexer) scanNumber(start location.Span) Token {
	var sb strings.Builder
	isFloat := false

	if l.peekByte() == '0' && (l.peekByteAt(1) == 'b' || l.peekByteAt(1) == 'B' || l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X') {
		sb.WriteByte(l.advance())
		sb.WriteByte(l.advance())
		for l.pos < len(l.src) && isHexOrBinDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
		return Token{Kind: TokInt, Text: sb.String(), Span: joinSpan(start, l.here())}
	}

	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		sb.WriteByte(l.advance())
	}
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isFloat = true
		sb.WriteByte(l.advance())
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		isFloat = true
		sb.WriteByte(l.advance())
		if l.peekByte() == '+' || l.peekByte() == '-' {
			sb.WriteByte(l.advance())
		}
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
	}

	kind := TokInt
	if isFloat {
		kind = TokFloat
	}
	return Token{Kind: kind, Text: sb.String(), Span: joinSpan(start, l.here())}
}

func isHexOrBinDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *Lexer) scanString(start location.Span) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		b := l.peekByte()
		if b == '"' {
			l.advance()
			return Token{Kind: TokString, Text: sb.String(), Span: joinSpan(start, l.here())}
		}
		if b == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				break
			}
			esc := l.advance()
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(l.advance())
	}
	l.errs.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_INCOMPLETE, "unterminated string literal").
		WithSpan(start).
		WithSourceName(l.source.String()).
		Build())
	return Token{Kind: TokString, Text: sb.String(), Span: joinSpan(start, l.here())}
}

func (l *Lexer) scanPunct(start location.Span) Token {
	b := l.advance()
	switch b {
	case '{':
		return Token{Kind: TokLBrace, Text: "{", Span: start}
	case '}':
		return Token{Kind: TokRBrace, Text: "}", Span: start}
	case '[':
		return Token{Kind: TokLBracket, Text: "[", Span: start}
	case ']':
		return Token{Kind: TokRBracket, Text: "]", Span: start}
	case '(':
		return Token{Kind: TokLParen, Text: "(", Span: start}
	case ')':
		return Token{Kind: TokRParen, Text: ")", Span: start}
	case ';':
		return Token{Kind: TokSemi, Text: ";", Span: start}
	case ',':
		return Token{Kind: TokComma, Text: ",", Span: start}
	case '<':
		return Token{Kind: TokLAngle, Text: "<", Span: start}
	case '>':
		return Token{Kind: TokRAngle, Text: ">", Span: start}
	case '*':
		return Token{Kind: TokStar, Text: "*", Span: start}
	case ':':
		if l.peekByte() == '=' {
			l.advance()
			return Token{Kind: TokColonEq, Text: ":=", Span: joinSpan(start, l.here())}
		}
		return Token{Kind: TokColon, Text: ":", Span: start}
	case '=':
		return Token{Kind: TokEquals, Text: "=", Span: start}
	case '.':
		if l.peekByte() == '.' && l.peekByteAt(1) == '.' {
			l.advance()
			l.advance()
			return Token{Kind: TokEllipsis, Text: "...", Span: joinSpan(start, l.here())}
		}
		return Token{Kind: TokDot, Text: ".", Span: start}
	case '-':
		if l.peekByte() == '>' {
			l.advance()
			return Token{Kind: TokArrow, Text: "->", Span: joinSpan(start, l.here())}
		}
		return Token{Kind: TokMinus, Text: "-", Span: start}
	}
	l.errs.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_SYNTAX, "unexpected character '"+string(b)+"'").
		WithSpan(start).
		WithSourceName(l.source.String()).
		Build())
	return Token{Kind: TokEOF, Text: "", Span: start}
}

func joinSpan(start, end location.Span) location.Span {
	return location.Span{Source: start.Source, Start: start.Start, End: end.Start}
}
