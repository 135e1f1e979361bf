// Package ini parses component parameter arguments of the form
// `KEY = VALUE (, KEY = VALUE)*` into a [value.Value] map.
//
// The parser is a hand-written six-state scanner in the style of the
// teacher's instance/path.Parse: a single pass over the byte string
// tracking position explicitly, rather than a generated grammar. Unlike
// path.Parse, every failure is reported as a [diag.Issue] carrying a
// [location.Span] so the caller can render a caret under the offending
// column of the original single-line argument.
package ini
