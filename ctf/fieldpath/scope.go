package fieldpath

// Scope names one of the six field-path lookup scopes, in their fixed
// visibility order: a field in a later scope may reference a field in
// any earlier scope, but never the reverse.
type Scope uint8

const (
	ScopePacketHeader Scope = iota
	ScopePacketContext
	ScopeEventHeader
	ScopeEventStreamContext
	ScopeEventContext
	ScopeEventPayload
)

// scopeOrder fixes the visibility ranking used by Before.
var scopeOrder = [...]Scope{
	ScopePacketHeader,
	ScopePacketContext,
	ScopeEventHeader,
	ScopeEventStreamContext,
	ScopeEventContext,
	ScopeEventPayload,
}

func (s Scope) String() string {
	switch s {
	case ScopePacketHeader:
		return "packet header"
	case ScopePacketContext:
		return "packet context"
	case ScopeEventHeader:
		return "event header"
	case ScopeEventStreamContext:
		return "event stream context"
	case ScopeEventContext:
		return "event context"
	case ScopeEventPayload:
		return "event payload"
	default:
		return "unknown scope"
	}
}

// rank returns the scope's position in the fixed visibility order.
func (s Scope) rank() int {
	for i, sc := range scopeOrder {
		if sc == s {
			return i
		}
	}
	return -1
}

// Before reports whether s is strictly earlier than other in the fixed
// lookup order (the "refers to ... strictly earlier in scope order"
// invariant).
func (s Scope) Before(other Scope) bool {
	return s.rank() < other.rank()
}

// knownPrefix is a scope keyword chain recognised at the head of a link
// expression's segments, per CTF's conventional field-path spelling (e.g.
// `stream.packet.context.seq_num`).
type knownPrefix struct {
	segments []string
	scope    Scope
}

var knownPrefixes = []knownPrefix{
	{[]string{"trace", "packet", "header"}, ScopePacketHeader},
	{[]string{"stream", "packet", "context"}, ScopePacketContext},
	{[]string{"stream", "event", "header"}, ScopeEventHeader},
	{[]string{"stream", "event", "context"}, ScopeEventStreamContext},
	{[]string{"event", "context"}, ScopeEventContext},
	{[]string{"event", "fields"}, ScopeEventPayload},
}

// matchPrefix reports whether segs begins with prefix's segments.
func matchPrefix(prefix []string, segs []string) bool {
	if len(segs) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if segs[i] != p {
			return false
		}
	}
	return true
}
