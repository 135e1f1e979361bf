package diag

import (
	"fmt"
	"strings"

	"github.com/simon-lentz/tracegraph/location"
)

// SourceProvider supplies the original source text for an issue's span, so
// the Renderer can print a caret under the offending column. For single-line
// arguments (an INI parameter list, a --connect argument) this is simply the
// argument text itself; for CTF metadata files it is the accumulated TSDL
// text buffer.
type SourceProvider interface {
	// Line returns the 1-based line's text for the given source, without a
	// trailing newline. Returns ("", false) if unavailable.
	Line(source location.SourceID, line int) (string, bool)
}

// rendererConfig holds renderer configuration.
type rendererConfig struct {
	provider SourceProvider
	excerpts bool
}

// RendererOption configures Renderer behavior.
type RendererOption func(*rendererConfig)

// WithSourceProvider sets the source content provider for caret rendering.
func WithSourceProvider(p SourceProvider) RendererOption {
	return func(c *rendererConfig) { c.provider = p }
}

// WithExcerpts enables or disables source excerpts (requires a provider).
func WithExcerpts(on bool) RendererOption {
	return func(c *rendererConfig) { c.excerpts = on }
}

// Renderer formats [Result] and [Issue] values as human-readable text for
// the process boundary ("Chains are printed at the process boundary,
// never mutated below").
type Renderer struct {
	cfg rendererConfig
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{excerpts: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

// RenderResult formats every issue in the result, one block per issue,
// separated by blank lines.
func (r *Renderer) RenderResult(res Result) string {
	var sb strings.Builder
	first := true
	for issue := range res.Issues() {
		if !first {
			sb.WriteString("\n\n")
		}
		first = false
		sb.WriteString(r.RenderIssue(issue))
	}
	return sb.String()
}

// RenderIssue formats a single issue: "severity[code]: message", an optional
// source excerpt with a caret under the offending column, an optional hint,
// and the cause chain, printed in the order frames were appended as the
// error propagated upward (innermost first).
func (r *Renderer) RenderIssue(issue Issue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%s]: %s", issue.Severity(), issue.Code(), issue.Message())

	if issue.SourceName() != "" {
		fmt.Fprintf(&sb, "\n  --> %s", issue.SourceName())
		if issue.HasSpan() {
			fmt.Fprintf(&sb, ":%d:%d", issue.Span().Start.Line, issue.Span().Start.Column)
		}
	}

	if r.cfg.excerpts && r.cfg.provider != nil && issue.HasSpan() {
		if excerpt, ok := r.renderExcerpt(issue.Span()); ok {
			sb.WriteString("\n")
			sb.WriteString(excerpt)
		}
	}

	for _, d := range issue.Details() {
		fmt.Fprintf(&sb, "\n  %s: %s", d.Key, d.Value)
	}

	if issue.Hint() != "" {
		fmt.Fprintf(&sb, "\n  hint: %s", issue.Hint())
	}

	for _, frame := range issue.Causes() {
		fmt.Fprintf(&sb, "\n  caused by %s", frame)
	}

	return sb.String()
}

// renderExcerpt renders the source line containing span.Start with a caret
// under the start column ("a human-readable diagnostic
// with a caret pointing at the offending column of the original single-line
// argument").
func (r *Renderer) renderExcerpt(span location.Span) (string, bool) {
	line, ok := r.cfg.provider.Line(span.Source, span.Start.Line)
	if !ok {
		return "", false
	}
	col := span.Start.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return "  " + line + "\n  " + caret, true
}
