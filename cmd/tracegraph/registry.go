package main

import (
	"fmt"
	"strings"

	"github.com/simon-lentz/tracegraph/builtin"
	"github.com/simon-lentz/tracegraph/component"
)

// newRegistry returns a component.Registry populated with the classes
// shipped in the binary itself: in-process self-registration, since dynamic
// loading is out of scope. An external plugin registers itself the same way
// from its own package's init; this function stands in for the set of
// packages a real build would blank-import.
func newRegistry() *component.Registry {
	r := component.NewRegistry()
	must(r.Register(builtin.NewDummySourceClass()))
	must(r.Register(builtin.NewDummySinkClass()))
	must(r.Register(builtin.NewCTFFSSourceClass()))
	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// parseClassRef parses a "kind.plugin.class" component reference, e.g.
// "source.ctf.fs", into the triple the registry looks up by.
func parseClassRef(ref string) (component.ClassID, error) {
	parts := strings.SplitN(ref, ".", 3)
	if len(parts) != 3 {
		return component.ClassID{}, fmt.Errorf("component reference %q must have the form kind.plugin.class", ref)
	}
	kind, err := parseKind(parts[0])
	if err != nil {
		return component.ClassID{}, err
	}
	return component.ClassID{Kind: kind, PluginName: parts[1], ClassName: parts[2]}, nil
}

func parseKind(s string) (component.Kind, error) {
	switch s {
	case "source":
		return component.Source, nil
	case "filter":
		return component.Filter, nil
	case "sink":
		return component.Sink, nil
	default:
		return 0, fmt.Errorf("unknown component kind %q (want source, filter, or sink)", s)
	}
}
