package ir

import (
	"strconv"

	"github.com/simon-lentz/tracegraph/ctf/tsdl"
)

// findEntry returns the entry with the given key, and whether it exists.
func findEntry(entries []*tsdl.Entry, key string) (*tsdl.Entry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// stringProp returns the string value of entries[key], requiring a string
// or bare-identifier literal.
func stringProp(entries []*tsdl.Entry, key, fallback string) string {
	e, ok := findEntry(entries, key)
	if !ok {
		return fallback
	}
	lit, ok := e.Value.(*tsdl.LiteralExpr)
	if !ok {
		return fallback
	}
	return lit.Text
}

// intProp returns the integer value of entries[key], parsed with Go's
// standard integer literal rules (0x/0b/0 prefixes accepted, per the lexer's
// TSDL lexer).
func intProp(entries []*tsdl.Entry, key string, fallback int64) int64 {
	e, ok := findEntry(entries, key)
	if !ok {
		return fallback
	}
	lit, ok := e.Value.(*tsdl.LiteralExpr)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(lit.Text, 0, 64)
	if err != nil {
		return fallback
	}
	return n
}

// uintProp is intProp with an unsigned fallback/return type, for bit
// widths and packet/stream/event ids.
func uintProp(entries []*tsdl.Entry, key string, fallback uint64) uint64 {
	e, ok := findEntry(entries, key)
	if !ok {
		return fallback
	}
	lit, ok := e.Value.(*tsdl.LiteralExpr)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseUint(lit.Text, 0, 64)
	if err != nil {
		return fallback
	}
	return n
}

// identProp returns entries[key] as a string, or fallback when it is
// absent. Bare-word values such as `signed = true` are returned as their
// identifier text.
func identProp(entries []*tsdl.Entry, key, fallback string) string {
	return stringProp(entries, key, fallback)
}
