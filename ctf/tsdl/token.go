package tsdl

import "github.com/simon-lentz/tracegraph/location"

// TokenKind discriminates the lexical tokens of the TSDL grammar.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokFloat
	TokString

	TokLBrace    // {
	TokRBrace    // }
	TokLBracket  // [
	TokRBracket  // ]
	TokLParen    // (
	TokRParen    // )
	TokEquals    // =
	TokColonEq   // :=
	TokSemi      // ;
	TokComma     // ,
	TokColon     // :
	TokDot       // .
	TokArrow     // ->
	TokEllipsis  // ...
	TokLAngle    // <
	TokRAngle    // >
	TokStar      // *
	TokMinus     // - (unary, when not followed by '>')
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokInt:
		return "integer literal"
	case TokFloat:
		return "float literal"
	case TokString:
		return "string literal"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokEquals:
		return "'='"
	case TokColonEq:
		return "':='"
	case TokSemi:
		return "';'"
	case TokComma:
		return "','"
	case TokColon:
		return "':'"
	case TokDot:
		return "'.'"
	case TokArrow:
		return "'->'"
	case TokEllipsis:
		return "'...'"
	case TokLAngle:
		return "'<'"
	case TokRAngle:
		return "'>'"
	case TokStar:
		return "'*'"
	case TokMinus:
		return "'-'"
	default:
		return "unknown token"
	}
}

// Token is one lexical unit with its source span.
type Token struct {
	Kind  TokenKind
	Text  string
	Span  location.Span
}
