// Package diag provides structured diagnostics shared across every layer of
// the component graph runtime: the value tree, the INI parameter parser, the
// connection argument parser, the graph validator, the CTF metadata decoder
// and the scheduler.
//
// # Design Principles
//
//   - Structured data, string-last presentation: a [location.Span] is stored
//     as data, never embedded in a message string.
//   - Immutable results: [Result] stores issues in unexported fields and
//     exposes accessor methods that return defensive copies.
//   - Stable error codes: [Code] values are stable identifiers that callers
//     can match on even when message text changes.
//   - Deterministic ordering: [Collector.Result] sorts issues by source,
//     position and code so output is stable across runs.
//   - Builder pattern: [IssueBuilder] is the only valid construction path
//     for [Issue] values.
//   - Cause chains: an error carries a cause chain — each layer that reports
//     failure appends a structured [Frame] (layer name, message, optional
//     span). [IssueBuilder.WithCause] and [Issue.Causes] implement this;
//     chains are assembled bottom-up as an error propagates and are rendered
//     only at the process boundary, never mutated below it.
//
// # Entry Point Pattern
//
// Public entry points in this module follow one convention:
//
//   - err != nil: a catastrophic failure (I/O, internal invariant violation).
//   - err == nil and !result.OK(): a semantic failure represented as
//     structured issues (parse error, validation failure, decoder error).
package diag
