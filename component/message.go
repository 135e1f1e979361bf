package component

// MessageKind discriminates the messages that flow across a connection
// one of: an event, a packet boundary, a stream boundary, a
// discarded-events record, or a message-iterator inactivity marker.
type MessageKind uint8

const (
	MessageEvent MessageKind = iota
	MessagePacketBoundary
	MessageStreamBoundary
	MessageDiscardedEvents
	MessageInactivity
)

func (k MessageKind) String() string {
	switch k {
	case MessageEvent:
		return "event"
	case MessagePacketBoundary:
		return "packet-boundary"
	case MessageStreamBoundary:
		return "stream-boundary"
	case MessageDiscardedEvents:
		return "discarded-events"
	case MessageInactivity:
		return "inactivity"
	default:
		return "unknown"
	}
}

// Message is the unit of data a downstream port pulls from its upstream
// connection. The core does not interpret the Payload (per the
// specification's non-goal "does not interpret event payloads itself"); it
// only routes messages between ports in FIFO per-connection order.
type Message struct {
	Kind    MessageKind
	Payload any
}
