package graph

import (
	"fmt"
	"time"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/connect"
	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

// ComponentConfig names one component to instantiate: its class, its
// instance name, and its frozen parameter map ("Component creation").
// Name may be empty, in which case Build auto-assigns one from the class
// suffix ("Component instance").
type ComponentConfig struct {
	Class  component.Class
	Name   string
	Params value.Value
}

// Config is the scheduler's input: the three ordered component lists the
// configuration parser produced, plus the already-validated connection
// list.
type Config struct {
	Sources     []ComponentConfig
	Filters     []ComponentConfig
	Sinks       []ComponentConfig
	Connections []connect.Connection

	// RetryDuration is how long Run sleeps after an AGAIN result before
	// retrying. Zero selects DefaultRetryDuration.
	RetryDuration time.Duration
}

// DefaultRetryDuration is the retry_duration_us default (100000us).
const DefaultRetryDuration = 100 * time.Millisecond

var _ component.Listener = (*Graph)(nil)

// interruptPollInterval bounds how finely Run checks the interrupter while
// sleeping out a retry period: "poll the interrupter at a
// granularity finer than 100ms".
const interruptPollInterval = 10 * time.Millisecond

// Graph is an instantiated, connected component graph ready to run.
// Ports are owned by their component; a connection is resolved by the
// scheduler once, at wiring time, and never re-resolved by address
// afterward ("Shared resources").
type Graph struct {
	source location.SourceID
	byName map[string]*component.Instance
	order  []*component.Instance // instantiation order, for reverse teardown
	sinks  []*component.Instance
	conns   []connect.Connection
	retry   time.Duration
	cursor  int // round-robin position over sinks
	ended   map[*component.Instance]bool
	pending diag.Collector
}

// Build instantiates every component named in cfg, validates the resulting
// graph, wires the initial connections, and installs the dynamic-port
// listener on every instance. On any failure, every component created so
// far is torn down in reverse order.
func Build(source location.SourceID, cfg Config) (*Graph, diag.Result) {
	g := &Graph{
		source: source,
		byName: make(map[string]*component.Instance),
		conns:  cfg.Connections,
		retry:  cfg.RetryDuration,
	}
	if g.retry <= 0 {
		g.retry = DefaultRetryDuration
	}

	all := make([]ComponentConfig, 0, len(cfg.Sources)+len(cfg.Filters)+len(cfg.Sinks))
	all = append(all, cfg.Sources...)
	all = append(all, cfg.Filters...)
	all = append(all, cfg.Sinks...)

	for _, cc := range all {
		name := cc.Name
		if name == "" {
			name = g.autoName(cc.Class.ID())
		}
		in, err := cc.Class.Instantiate(name, cc.Params)
		if err != nil {
			g.teardown()
			return nil, instantiateFailure(source, name, err)
		}
		in.SetListener(g)
		g.byName[name] = in
		g.order = append(g.order, in)
		if cc.Class.ID().Kind == component.Sink {
			g.sinks = append(g.sinks, in)
		}
		if err := in.Impl().Init(in); err != nil {
			g.teardown()
			return nil, instantiateFailure(source, name, err)
		}
	}

	if res := Validate(source, g.order, g.conns); !res.OK() {
		g.teardown()
		return nil, res
	}

	if res := g.connectAll(); !res.OK() {
		g.teardown()
		return nil, res
	}

	return g, diag.OK()
}

func instantiateFailure(source location.SourceID, name string, err error) diag.Result {
	var c diag.Collector
	c.Collect(diag.NewIssue(diag.Error, diag.E_SCHED_INSTANTIATE_FAILED,
		"component "+name+" failed to instantiate: "+err.Error()).
		WithSourceName(source.String()).
		WithDetail(diag.DetailKeyComponent, name).
		Build())
	return c.Result()
}

// teardown calls Finalize on every created instance in reverse
// instantiation order. Errors from Finalize are not fatal to teardown
// itself; they are simply the best any given component can do once it is
// already on the error path.
func (g *Graph) teardown() {
	for i := len(g.order) - 1; i >= 0; i-- {
		_ = g.order[i].Impl().Finalize()
	}
	g.order = nil
	g.sinks = nil
	g.byName = nil
}

// Teardown tears down a successfully built Graph. Callers run this after
// [Graph.Run] returns, regardless of its result.
func (g *Graph) Teardown() {
	g.teardown()
}

// Instance returns the named component instance, or nil if no such
// instance exists in this graph.
func (g *Graph) Instance(name string) *component.Instance {
	return g.byName[name]
}

// autoName assigns an instance name for a component whose configuration
// left Name empty: the class suffix itself if free, otherwise the class
// suffix with a "-<n>" disambiguator, per the component-instance invariant
// that every name in a graph is unique ("Component instance").
func (g *Graph) autoName(id component.ClassID) string {
	suffix := id.ClassName
	if _, taken := g.byName[suffix]; !taken {
		return suffix
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", suffix, n)
		if _, taken := g.byName[candidate]; !taken {
			return candidate
		}
	}
}

// connectAll performs the initial port-connection pass ("Port
// connection": for every component's output ports, in declaration order,
// find matching connections and bind the first unconnected matching
// downstream input.
func (g *Graph) connectAll() diag.Result {
	var c diag.Collector
	for _, in := range g.order {
		for _, out := range in.OutputPorts() {
			g.tryConnectOutput(in, out, &c)
		}
	}
	return c.Result()
}

// tryConnectOutput implements the match-and-connect procedure shared by
// the initial connection pass and the dynamic port-added listener: find
// every connection whose upstream glob matches this port, locate the named
// downstream component, and bind to its first unconnected input port whose
// name matches the downstream glob.
func (g *Graph) tryConnectOutput(owner *component.Instance, out *component.Port, c *diag.Collector) {
	if out.IsConnected() {
		return
	}
	for _, conn := range g.conns {
		if conn.UpstreamName != owner.Name() || !connect.Matches(conn.UpstreamGlob, out.Name()) {
			continue
		}
		down, ok := g.byName[conn.DownstreamName]
		if !ok {
			continue // reported by Validate already
		}
		glob := conn.DownstreamGlob
		in := down.FirstUnconnectedInputMatching(func(name string) bool {
			return connect.Matches(glob, name)
		})
		if in == nil {
			c.Collect(diag.NewIssue(diag.Error, diag.E_GRAPH_PORT_MISMATCH,
				"no unconnected input port on "+down.Name()+" matches "+glob).
				WithSourceName(g.source.String()).
				WithDetail(diag.DetailKeyArgument, conn.OriginalArg).
				WithDetail(diag.DetailKeyComponent, down.Name()).
				WithDetail(diag.DetailKeyPort, out.Name()).
				Build())
			continue
		}
		bindPull(out, in)
		return
	}
}

// bindPull connects two ports: both are marked connected, and the input
// port's pull closure is wired to call the output port owner's Next.
func bindPull(out, in *component.Port) {
	peer := out
	in.BindPull(func() (component.Message, component.Status, error) {
		msg, status, err := peer.Owner().Impl().(component.Source).Next(peer)
		if status == component.StatusOK {
			messagesDeliveredTotal.WithLabelValues(msg.Kind.String()).Inc()
		}
		return msg, status, err
	})
	out.Connect()
	in.Connect()
}

// OutputPortAdded implements [component.Listener]: a component discovered
// a new output port during execution ("Dynamic ports"). The listener
// attempts the same match-and-connect procedure used at startup; failure
// to connect a dynamically-discovered port is reported but does not itself
// abort the run and is not part of the [Graph.Run] result — the caller
// retrieves it with [Graph.PendingIssues].
func (g *Graph) OutputPortAdded(owner *component.Instance, p *component.Port) {
	var c diag.Collector
	g.tryConnectOutput(owner, p, &c)
	g.pending.Merge(c.Result())
}

// InputPortAdded implements [component.Listener]. Input ports are never
// proactively connected by the scheduler — they become reachable the next
// time some output port's match-and-connect procedure runs, since
// [component.Instance.FirstUnconnectedInputMatching] always considers the
// full current input set.
func (g *Graph) InputPortAdded(*component.Instance, *component.Port) {}
