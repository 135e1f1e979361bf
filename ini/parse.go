package ini

import (
	"strconv"
	"strings"

	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

// state names the six states of the scanner's FSM, kept as a type purely for
// documentation: the transitions below are MAP_KEY -> EQUAL -> VALUE (or
// VALUE_NEG for a leading '-') -> COMMA -> MAP_KEY -> ... until end of input.
type state int

const (
	stateMapKey state = iota
	stateEqual
	stateValue
	stateValueNeg
	stateComma
	stateDone
)

// Parse parses a single-line parameter argument into a frozen-capable value
// map. On any grammar violation it returns a non-OK [diag.Result] describing
// every failure found; scanning stops at the first error per field since
// later state is no longer trustworthy.
func Parse(source location.SourceID, s string) (value.Value, diag.Result) {
	p := &parser{source: source, s: s}
	p.run()
	return p.result, p.collector.Result()
}

type parser struct {
	source    location.SourceID
	s         string
	pos       int
	collector diag.Collector
	result    value.Value
}

func (p *parser) col() int { return p.pos + 1 }

func (p *parser) point() location.Span {
	return location.Point(p.source, 1, p.col())
}

func (p *parser) fail(code diag.Code, message string) {
	p.collector.Collect(diag.NewIssue(diag.Error, code, message).
		WithSpan(p.point()).
		WithSourceName(p.source.String()).
		Build())
}

func (p *parser) run() {
	m := value.NewMap()
	p.result = m

	state := stateMapKey
	var key string

	for state != stateDone {
		switch state {
		case stateMapKey:
			if p.pos >= len(p.s) {
				if m.Len() == 0 {
					// empty argument is a valid empty map
					state = stateDone
					break
				}
				p.fail(diag.E_INI_SYNTAX, "expected key after ','")
				return
			}
			k, ok := p.scanKey()
			if !ok {
				return
			}
			key = k
			state = stateEqual

		case stateEqual:
			if p.pos >= len(p.s) || p.s[p.pos] != '=' {
				p.fail(diag.E_INI_SYNTAX, "expected '=' after key")
				return
			}
			p.pos++
			if p.pos < len(p.s) && p.s[p.pos] == '-' {
				state = stateValueNeg
			} else {
				state = stateValue
			}

		case stateValueNeg, stateValue:
			v, ok := p.scanValue(state == stateValueNeg)
			if !ok {
				return
			}
			if _, exists := m.Get(key); exists {
				p.fail(diag.E_INI_DUPLICATE_KEY, "duplicate key "+strconv.Quote(key))
				return
			}
			_ = m.Insert(key, v)
			state = stateComma

		case stateComma:
			if p.pos >= len(p.s) {
				state = stateDone
				break
			}
			if p.s[p.pos] != ',' {
				p.fail(diag.E_INI_SYNTAX, "expected ',' or end of argument")
				return
			}
			p.pos++
			state = stateMapKey
		}
	}
}

func isKeyStart(r byte) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
}

func isKeyCont(r byte) bool {
	return isKeyStart(r) || (r >= '0' && r <= '9') || r == '.' || r == ':' || r == '-'
}

func (p *parser) scanKey() (string, bool) {
	start := p.pos
	if p.pos >= len(p.s) || !isKeyStart(p.s[p.pos]) {
		p.fail(diag.E_INI_SYNTAX, "expected key matching [A-Za-z_][A-Za-z0-9_.:-]*")
		return "", false
	}
	p.pos++
	for p.pos < len(p.s) && isKeyCont(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos], true
}

// scanValue dispatches on the leading character; neg indicates the caller
// saw a leading '-' of a negative number. The minus sign itself is still
// unread at p.pos and is consumed by scanNumber.
func (p *parser) scanValue(neg bool) (value.Value, bool) {
	if p.pos >= len(p.s) {
		p.fail(diag.E_INI_SYNTAX, "expected value")
		return value.Null, false
	}

	if neg || isDigit(p.s[p.pos]) {
		return p.scanNumber()
	}
	if p.s[p.pos] == '"' {
		return p.scanString()
	}
	return p.scanBareword()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *parser) scanBareword() (value.Value, bool) {
	start := p.pos
	for p.pos < len(p.s) && isWordChar(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		p.fail(diag.E_INI_SYNTAX, "expected value")
		return value.Null, false
	}
	word := p.s[start:p.pos]
	switch word {
	case "null", "nul", "NULL":
		return value.Null, true
	case "true", "TRUE", "yes", "YES":
		return value.NewBool(true), true
	case "false", "FALSE", "no", "NO":
		return value.NewBool(false), true
	default:
		return value.NewString(word), true
	}
}

func isWordChar(b byte) bool {
	return isKeyStart(b) || isDigit(b)
}

func (p *parser) scanNumber() (value.Value, bool) {
	start := p.pos
	if p.pos < len(p.s) && p.s[p.pos] == '-' {
		p.pos++
	}

	// Non-decimal integer bases: 0b, 0x/0X, 0-prefixed octal. None of these
	// accept a fractional or exponent suffix.
	if p.pos < len(p.s) && p.s[p.pos] == '0' && p.pos+1 < len(p.s) {
		switch p.s[p.pos+1] {
		case 'b', 'B':
			return p.scanBasedInt(start, 2, 2)
		case 'x', 'X':
			return p.scanBasedInt(start, 2, 16)
		default:
			if isDigit(p.s[p.pos+1]) {
				return p.scanBasedInt(start, 1, 8)
			}
		}
	}

	isFloat := false
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		isFloat = true
		p.pos++
		for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
			p.pos++
		}
	}
	if p.pos < len(p.s) && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		isFloat = true
		p.pos++
		if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
			p.pos++
		}
	}

	lit := p.s[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.fail(diag.E_INI_SYNTAX, "invalid floating-point literal "+strconv.Quote(lit))
			return value.Null, false
		}
		return value.NewFloat(f), true
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.fail(diag.E_INI_INT_RANGE, "integer literal "+strconv.Quote(lit)+" out of signed 64-bit range")
		return value.Null, false
	}
	return value.NewInt(i), true
}

// scanBasedInt parses a prefixed integer literal (0b, 0x, or legacy octal)
// starting prefixLen bytes after start ("0b"/"0x" are 2 bytes; a bare
// octal "0" prefix is 1 byte, the leading zero itself).
func (p *parser) scanBasedInt(start, prefixLen, base int) (value.Value, bool) {
	neg := p.s[start] == '-'
	digitsStart := start
	if neg {
		digitsStart++
	}
	p.pos = digitsStart + prefixLen
	for p.pos < len(p.s) && isBaseDigit(p.s[p.pos], base) {
		p.pos++
	}
	lit := p.s[digitsStart+prefixLen : p.pos]
	if lit == "" {
		p.fail(diag.E_INI_SYNTAX, "expected digits after numeric base prefix")
		return value.Null, false
	}
	i, err := strconv.ParseInt(lit, base, 64)
	if err != nil {
		p.fail(diag.E_INI_INT_RANGE, "integer literal out of signed 64-bit range")
		return value.Null, false
	}
	if neg {
		i = -i
	}
	return value.NewInt(i), true
}

func isBaseDigit(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	default:
		return isDigit(b)
	}
}

func (p *parser) scanString() (value.Value, bool) {
	startCol := p.col()
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '"':
			p.pos++
			return value.NewString(sb.String()), true
		case '\\':
			p.pos++
			if p.pos >= len(p.s) {
				p.fail(diag.E_INI_BAD_ESCAPE, "unterminated escape sequence")
				return value.Null, false
			}
			switch p.s[p.pos] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				p.fail(diag.E_INI_BAD_ESCAPE, "unknown escape sequence '\\"+string(p.s[p.pos])+"'")
				return value.Null, false
			}
			p.pos++
		default:
			sb.WriteByte(p.s[p.pos])
			p.pos++
		}
	}
	p.collector.Collect(diag.NewIssue(diag.Error, diag.E_INI_UNTERMINATED_STRING, "unterminated string literal").
		WithSpan(location.Point(p.source, 1, startCol)).
		WithSourceName(p.source.String()).
		Build())
	return value.Null, false
}
