package connect

// Connection is a structured `--connect` argument: an upstream component
// name and port glob, a downstream component name and port glob, plus the
// original textual argument kept for error messages.
type Connection struct {
	UpstreamName    string
	UpstreamGlob    string
	DownstreamName  string
	DownstreamGlob  string
	OriginalArg     string
}

// Key returns the four-tuple hash key used by the graph validator's
// duplicate check: the four fields joined by a control byte that is
// forbidden in any field.
func (c Connection) Key() string {
	const sep = "\x01"
	return c.UpstreamName + sep + c.UpstreamGlob + sep + c.DownstreamName + sep + c.DownstreamGlob
}
