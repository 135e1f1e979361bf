package component

import (
	"fmt"

	"github.com/simon-lentz/tracegraph/value"
)

// Listener receives notification of port-set changes on an instance. The
// scheduler installs one on every instance so it can auto-connect a port a
// component discovers after creation.
type Listener interface {
	OutputPortAdded(in *Instance, p *Port)
	InputPortAdded(in *Instance, p *Port)
}

// Instance is an addressable node in the graph: a stable name, its
// class, its frozen parameter map, and its ordered input/output port
// lists. Ports are added by Impl.Init (or discovered later during
// execution); the factory itself has no handle on the Instance.
type Instance struct {
	name     string
	class    Class
	params   value.Value
	impl     Impl
	inputs   []*Port
	outputs  []*Port
	listener Listener
}

// SetListener registers the scheduler's port-change listener. Only one
// listener is supported per instance; a second call replaces the first.
func (in *Instance) SetListener(l Listener) { in.listener = l }

// Name returns the instance's stable, unique-per-graph name.
func (in *Instance) Name() string { return in.name }

// Class returns the component class this instance was created from.
func (in *Instance) Class() Class { return in.class }

// Params returns the instance's frozen parameter map.
func (in *Instance) Params() value.Value { return in.params }

// Impl returns the underlying behavior implementation.
func (in *Instance) Impl() Impl { return in.impl }

// InputPorts returns the instance's input ports in declaration order.
func (in *Instance) InputPorts() []*Port { return in.inputs }

// OutputPorts returns the instance's output ports in declaration order.
func (in *Instance) OutputPorts() []*Port { return in.outputs }

// AddInputPort declares a new input port, rejecting a name already used by
// another input port on this instance. The component's kind must permit
// inputs.
func (in *Instance) AddInputPort(name string) (*Port, error) {
	if !in.class.id.Kind.HasInputs() {
		return nil, fmt.Errorf("component kind %s cannot own input ports", in.class.id.Kind)
	}
	for _, p := range in.inputs {
		if p.name == name {
			return nil, fmt.Errorf("input port %q already exists on %q", name, in.name)
		}
	}
	p := &Port{name: name, direction: Input, owner: in}
	in.inputs = append(in.inputs, p)
	if in.listener != nil {
		in.listener.InputPortAdded(in, p)
	}
	return p, nil
}

// AddOutputPort declares a new output port, rejecting a name already used
// by another output port on this instance. The component's kind must
// permit outputs. Impl.Init or Impl.Next may call this to expose a
// dynamically-discovered output port.
func (in *Instance) AddOutputPort(name string) (*Port, error) {
	if !in.class.id.Kind.HasOutputs() {
		return nil, fmt.Errorf("component kind %s cannot own output ports", in.class.id.Kind)
	}
	for _, p := range in.outputs {
		if p.name == name {
			return nil, fmt.Errorf("output port %q already exists on %q", name, in.name)
		}
	}
	p := &Port{name: name, direction: Output, owner: in}
	in.outputs = append(in.outputs, p)
	if in.listener != nil {
		in.listener.OutputPortAdded(in, p)
	}
	return p, nil
}

// FirstUnconnectedInputMatching returns the first unconnected input port
// whose name satisfies matches, or nil if none exists. Used by the
// scheduler's glob-based port matching.
func (in *Instance) FirstUnconnectedInputMatching(matches func(name string) bool) *Port {
	for _, p := range in.inputs {
		if !p.connected && matches(p.name) {
			return p
		}
	}
	return nil
}
