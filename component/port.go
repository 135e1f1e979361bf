package component

import "fmt"

// Direction identifies whether a port carries messages out of or into its
// owning component.
type Direction uint8

const (
	// Input ports receive messages from an upstream connection.
	Input Direction = iota
	// Output ports send messages to a downstream connection.
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// PullFunc retrieves the next message for an input port from whatever is
// bound to its upstream side. The scheduler installs this closure on
// connection; it never exposes the upstream *Port itself, only the
// ability to pull through it, matching the rule that ports are "resolvable by name, never by
// raw address" for anything outside the scheduler's own bookkeeping.
type PullFunc func() (Message, Status, error)

// Port is a named endpoint attached to exactly one component instance. A
// port carries at most one connection at a time.
type Port struct {
	name      string
	direction Direction
	owner     *Instance
	connected bool
	pull      PullFunc
}

// Name returns the port's name. Port names are arbitrary non-empty strings,
// unique within their component and direction.
func (p *Port) Name() string { return p.name }

// Direction returns whether this is an input or output port.
func (p *Port) Direction() Direction { return p.direction }

// Owner returns the component instance this port belongs to.
func (p *Port) Owner() *Instance { return p.owner }

// IsConnected reports whether this port already carries a connection.
func (p *Port) IsConnected() bool { return p.connected }

// Connect marks the port connected. The scheduler calls this once per port
// after successfully resolving a glob match; it does not hold a reference
// to the peer port (connections are resolved by name, never by raw
// address ("Shared resources").
func (p *Port) Connect() { p.connected = true }

// BindPull installs the pull closure an input port uses to draw its next
// message from whatever the scheduler connected upstream. Only the
// scheduler calls this, at connection time.
func (p *Port) BindPull(f PullFunc) { p.pull = f }

// Pull draws the next message through this input port. It is the call an
// Impl's Consume or Next method makes against its own input ports; the
// scheduler's wiring makes the recursive walk up the chain transparent to
// the caller.
func (p *Port) Pull() (Message, Status, error) {
	if p.pull == nil {
		return Message{}, StatusEnd, errPortNotConnected(p)
	}
	return p.pull()
}

func errPortNotConnected(p *Port) error {
	return fmt.Errorf("port %q of %q is not connected", p.name, p.owner.Name())
}
