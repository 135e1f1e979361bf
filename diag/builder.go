package diag

import (
	"fmt"

	"github.com/simon-lentz/tracegraph/location"
)

// IssueBuilder provides fluent construction of [Issue] values. It is the
// only valid construction path for Issue in production code.
//
// Example:
//
//	issue := diag.NewIssue(diag.Error, diag.E_GRAPH_CYCLE, "cycle between F1 and F2").
//	    WithSourceName(rawArgument).
//	    WithDetail(diag.DetailKeyComponent, "F1").
//	    Build()
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue with its required fields.
//
// Panics if severity is out of range, code is zero, or message is empty —
// these are programmer errors, caught at construction time rather than
// deferred to [Collector.Collect].
func NewIssue(severity Severity, code Code, message string) *IssueBuilder {
	if severity > Hint {
		panic(fmt.Sprintf("diag.NewIssue: invalid severity %d", severity))
	}
	if code.IsZero() {
		panic("diag.NewIssue: zero code")
	}
	if message == "" {
		panic("diag.NewIssue: empty message")
	}
	return &IssueBuilder{issue: Issue{severity: severity, code: code, message: message}}
}

// WithSpan attaches a source location.
func (b *IssueBuilder) WithSpan(span location.Span) *IssueBuilder {
	b.issue.span = span
	return b
}

// WithSourceName attaches a provenance label.
func (b *IssueBuilder) WithSourceName(name string) *IssueBuilder {
	b.issue.sourceName = name
	return b
}

// WithHint attaches a resolution suggestion.
func (b *IssueBuilder) WithHint(hint string) *IssueBuilder {
	b.issue.hint = hint
	return b
}

// WithDetail appends one key-value detail.
func (b *IssueBuilder) WithDetail(key, value string) *IssueBuilder {
	b.issue.details = append(b.issue.details, Detail{Key: key, Value: value})
	return b
}

// WithDetails appends multiple details.
func (b *IssueBuilder) WithDetails(details ...Detail) *IssueBuilder {
	b.issue.details = append(b.issue.details, details...)
	return b
}

// WithCause appends one frame to the end of the cause chain (the newest,
// outermost frame). Call this once per layer as the error propagates upward
// so the chain reads oldest-cause-first.
func (b *IssueBuilder) WithCause(frame Frame) *IssueBuilder {
	b.issue.causes = append(b.issue.causes, frame)
	return b
}

// WithCauses prepends an existing cause chain (from a lower layer) ahead of
// any frames already on this builder.
func (b *IssueBuilder) WithCauses(causes []Frame) *IssueBuilder {
	if len(causes) == 0 {
		return b
	}
	merged := make([]Frame, 0, len(causes)+len(b.issue.causes))
	merged = append(merged, causes...)
	merged = append(merged, b.issue.causes...)
	b.issue.causes = merged
	return b
}

// Build returns the constructed Issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
