package connect

import (
	"strconv"

	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// field names the four fields of the four-state FSM: upstream name,
// upstream glob, downstream name, downstream glob.
type field int

const (
	fieldUpstreamName field = iota
	fieldUpstreamGlob
	fieldDownstreamName
	fieldDownstreamGlob
)

func (f field) label() string {
	switch f {
	case fieldUpstreamName:
		return "upstream name"
	case fieldUpstreamGlob:
		return "upstream glob"
	case fieldDownstreamName:
		return "downstream name"
	case fieldDownstreamGlob:
		return "downstream glob"
	default:
		return "field"
	}
}

// Parse parses a `--connect` argument into a [Connection]. A malformed
// argument produces a non-OK [diag.Result] identifying which field failed.
func Parse(source location.SourceID, arg string) (Connection, diag.Result) {
	p := &parser{source: source, s: arg}
	conn := p.run()
	conn.OriginalArg = arg
	return conn, p.collector.Result()
}

type parser struct {
	source    location.SourceID
	s         string
	pos       int
	collector diag.Collector
}

func (p *parser) fail(code diag.Code, f field, message string) {
	p.collector.Collect(diag.NewIssue(diag.Error, code, message).
		WithSpan(location.Point(p.source, 1, p.pos+1)).
		WithSourceName(p.source.String()).
		WithDetail(diag.DetailKeyField, f.label()).
		Build())
}

func (p *parser) run() Connection {
	up, ok := p.scanField(fieldUpstreamName, false)
	if !ok {
		return Connection{}
	}

	upGlob := "*"
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		p.pos++
		g, ok := p.scanField(fieldUpstreamGlob, true)
		if !ok {
			return Connection{}
		}
		upGlob = g
	}

	if p.pos >= len(p.s) || p.s[p.pos] != ':' {
		p.fail(diag.E_CONN_SYNTAX, fieldUpstreamGlob, "expected ':' separating upstream and downstream")
		return Connection{}
	}
	p.pos++

	down, ok := p.scanField(fieldDownstreamName, false)
	if !ok {
		return Connection{}
	}

	downGlob := "*"
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		p.pos++
		g, ok := p.scanField(fieldDownstreamGlob, true)
		if !ok {
			return Connection{}
		}
		downGlob = g
	}

	if p.pos != len(p.s) {
		p.fail(diag.E_CONN_SYNTAX, fieldDownstreamGlob, "unexpected trailing characters")
		return Connection{}
	}

	return Connection{
		UpstreamName:   up,
		UpstreamGlob:   normalizeStars(upGlob),
		DownstreamName: down,
		DownstreamGlob: normalizeStars(downGlob),
	}
}

// isAllowedControl reports whether b is one of the four control characters
// the spec permits inside an otherwise-printable argument.
func isAllowedControl(b byte) bool {
	switch b {
	case '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

// scanField reads up to the next unescaped '.' or ':' or to the end of
// input. Name and glob fields stop alike, so a literal '.' inside a glob
// field must be escaped too.
func (p *parser) scanField(f field, isGlob bool) (string, bool) {
	var out []byte
	for p.pos < len(p.s) {
		b := p.s[p.pos]

		if b < 0x20 && !isAllowedControl(b) {
			p.fail(diag.E_CONN_CONTROL_CHAR, f, "control character "+strconv.QuoteRune(rune(b))+" not allowed")
			return "", false
		}

		if b == '\\' {
			p.pos++
			if p.pos >= len(p.s) {
				p.fail(diag.E_CONN_BAD_ESCAPE, f, "unterminated escape sequence")
				return "", false
			}
			esc := p.s[p.pos]
			if !isEscapable(esc, isGlob) {
				p.fail(diag.E_CONN_BAD_ESCAPE, f, "'"+string(esc)+"' cannot be escaped in this position")
				return "", false
			}
			out = append(out, esc)
			p.pos++
			continue
		}

		if !isGlob && (b == '?' || b == '[') {
			// '?' and '[' are only reserved inside globs; in name fields they
			// are ordinary characters.
			out = append(out, b)
			p.pos++
			continue
		}

		if isGlob && (b == '?' || b == '[') {
			p.fail(diag.E_CONN_RESERVED_CHAR, f, "'"+string(b)+"' is reserved and must be escaped")
			return "", false
		}

		if b == '.' || b == ':' {
			break
		}

		out = append(out, b)
		p.pos++
	}

	if len(out) == 0 {
		p.fail(diag.E_CONN_SYNTAX, f, f.label()+" must not be empty")
		return "", false
	}
	return string(out), true
}

func isEscapable(b byte, isGlob bool) bool {
	switch b {
	case '\\', '.', ':':
		return true
	case '*', '?', '[':
		return isGlob
	default:
		return false
	}
}

// normalizeStars collapses runs of consecutive '*' into one.
func normalizeStars(pattern string) string {
	out := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' && i > 0 && pattern[i-1] == '*' {
			continue
		}
		out = append(out, pattern[i])
	}
	return string(out)
}
