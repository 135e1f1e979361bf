package diag

import "github.com/simon-lentz/tracegraph/location"

// Frame is one link in an Issue's cause chain.
//
// Diagnostics require that "an error carries a cause chain:
// each layer that reports failure appends a structured frame (layer name,
// message, optional file location)". A Frame is that structured record.
// Chains read oldest-cause-first; [Issue.Causes] returns them in that order.
type Frame struct {
	// Layer names the component that produced this frame, e.g. "ini",
	// "connect", "ctf/tsdl", "graph", "scheduler".
	Layer string
	// Message is a short, human-readable description with no embedded
	// location (use Span for that).
	Message string
	// Span is the originating source location, if known.
	Span location.Span
}

// HasSpan reports whether the frame carries a known location.
func (f Frame) HasSpan() bool {
	return !f.Span.IsZero()
}

// String renders the frame as "layer: message" or "layer: message (span)".
func (f Frame) String() string {
	if f.HasSpan() {
		return f.Layer + ": " + f.Message + " (" + f.Span.String() + ")"
	}
	return f.Layer + ": " + f.Message
}
