package builtin

import (
	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/value"
)

// DummySourceID identifies the no-op source: it emits "count" events (an
// int parameter, default 0) on its single "out" port, then ends.
var DummySourceID = component.ClassID{Kind: component.Source, PluginName: "utils", ClassName: "dummy"}

// DummySinkID identifies the no-op sink: it pulls and discards until
// end-of-stream.
var DummySinkID = component.ClassID{Kind: component.Sink, PluginName: "utils", ClassName: "dummy"}

// NewDummySourceClass returns the utils.dummy source class.
func NewDummySourceClass() component.Class {
	return component.NewClass(DummySourceID, newDummySource)
}

// NewDummySinkClass returns the utils.dummy sink class.
func NewDummySinkClass() component.Class {
	return component.NewClass(DummySinkID, newDummySink)
}

type dummySource struct {
	total   int64
	emitted int64
}

func newDummySource(_ string, params value.Value) (component.Impl, error) {
	total := int64(0)
	if v, ok := params.Get("count"); ok {
		if n, ok := v.Int(); ok {
			total = n
		}
	}
	return &dummySource{total: total}, nil
}

func (s *dummySource) Init(self *component.Instance) error {
	_, err := self.AddOutputPort("out")
	return err
}

func (s *dummySource) Finalize() error { return nil }

func (s *dummySource) Next(*component.Port) (component.Message, component.Status, error) {
	if s.emitted >= s.total {
		return component.Message{}, component.StatusEnd, nil
	}
	s.emitted++
	return component.Message{Kind: component.MessageEvent, Payload: s.emitted}, component.StatusOK, nil
}

type dummySink struct {
	in   *component.Port
	done bool
}

func newDummySink(string, value.Value) (component.Impl, error) {
	return &dummySink{}, nil
}

func (s *dummySink) Init(self *component.Instance) error {
	port, err := self.AddInputPort("in")
	if err != nil {
		return err
	}
	s.in = port
	return nil
}

func (s *dummySink) Finalize() error { return nil }

func (s *dummySink) Consume() (component.Status, error) {
	if s.done {
		return component.StatusEnd, nil
	}
	_, status, err := s.in.Pull()
	if status == component.StatusEnd {
		s.done = true
	}
	return status, err
}
