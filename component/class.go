package component

import (
	"fmt"

	"github.com/simon-lentz/tracegraph/value"
)

// ClassID is the (kind, plugin name, class name) triple that identifies a
// component class uniquely within a process.
type ClassID struct {
	Kind       Kind
	PluginName string
	ClassName  string
}

func (id ClassID) String() string {
	return fmt.Sprintf("%s.%s.%s", id.Kind, id.PluginName, id.ClassName)
}

// Impl is the behavior contract a concrete component implementation
// provides. The core never implements Impl itself — per the
// specification's scope note, "the individual source/sink component
// implementations" are thin external collaborators; only this interface
// contract is part of the core.
type Impl interface {
	// Init is called once, right after instantiation and before the
	// scheduler wires connections; the instance is passed so Init may add
	// its ports via [Instance.AddInputPort] and [Instance.AddOutputPort].
	Init(self *Instance) error

	// Finalize is called during teardown, in reverse instantiation order,
	// regardless of whether Init or any Consume/Next call failed.
	Finalize() error
}

// Sink is the subset of Impl a sink component additionally provides: one
// pull per scheduler iteration.
type Sink interface {
	Impl
	Consume() (Status, error)
}

// Source is the subset of Impl a source or filter component additionally
// provides: production of the next message on a given output port.
type Source interface {
	Impl
	Next(port *Port) (Message, Status, error)
}

// Factory constructs a component Impl given its instance name and a frozen
// parameter map. A factory is supplied by a plugin for one ClassID.
type Factory func(instanceName string, params value.Value) (Impl, error)

// QueryFunc answers a class-level query by well-known object name, e.g. the
// "babeltrace.support-info" object the source auto-discovery helper uses to
// weigh candidate inputs. A class that has no queries to answer leaves this
// nil.
type QueryFunc func(object string, params value.Value) (value.Value, error)

// Class is a registered component class: an identity, a factory, and an
// optional query responder.
type Class struct {
	id      ClassID
	factory Factory
	query   QueryFunc
}

// NewClass returns a Class with no query support. factory must not be nil.
func NewClass(id ClassID, factory Factory) Class {
	return Class{id: id, factory: factory}
}

// NewQueryableClass returns a Class that additionally answers class-level
// queries, e.g. support-info weighing during source auto-discovery.
func NewQueryableClass(id ClassID, factory Factory, query QueryFunc) Class {
	return Class{id: id, factory: factory, query: query}
}

// ID returns the class's identity triple.
func (c Class) ID() ClassID { return c.id }

// Queryable reports whether this class answers class-level queries.
func (c Class) Queryable() bool { return c.query != nil }

// Query invokes the class's query responder. It returns an error if the
// class is not queryable.
func (c Class) Query(object string, params value.Value) (value.Value, error) {
	if c.query == nil {
		return value.Value{}, fmt.Errorf("component class %s does not support queries", c.id)
	}
	return c.query(object, params)
}

// Instantiate invokes the factory to create a component instance with the
// given name and frozen parameter map, wrapping the resulting Impl in an
// addressable [Instance].
func (c Class) Instantiate(instanceName string, params value.Value) (*Instance, error) {
	params.Freeze()
	impl, err := c.factory(instanceName, params)
	if err != nil {
		return nil, err
	}
	return &Instance{
		name:   instanceName,
		class:  c,
		params: params,
		impl:   impl,
	}, nil
}
