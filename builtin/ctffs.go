package builtin

import (
	"os"
	"path/filepath"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/ctf"
	"github.com/simon-lentz/tracegraph/discover"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

// CTFFSSourceID identifies the filesystem CTF trace source. Its support-info
// query recognizes a directory holding a "metadata" file that the CTF
// decoder actually accepts, grounded on babeltrace's own ctf.fs source.
var CTFFSSourceID = component.ClassID{Kind: component.Source, PluginName: "ctf", ClassName: "fs"}

// NewCTFFSSourceClass returns the class. Live CTF event-stream reading is
// outside the metadata decoder's scope, so the instantiated source never
// produces events; only its support-info query does real work today.
func NewCTFFSSourceClass() component.Class {
	return component.NewQueryableClass(CTFFSSourceID, newCTFFSSource, ctfFSSupportInfo)
}

type ctfFSSource struct{}

func newCTFFSSource(string, value.Value) (component.Impl, error) {
	return ctfFSSource{}, nil
}

func (ctfFSSource) Init(*component.Instance) error { return nil }
func (ctfFSSource) Finalize() error                { return nil }

func (ctfFSSource) Next(*component.Port) (component.Message, component.Status, error) {
	return component.Message{}, component.StatusEnd, nil
}

func ctfFSSupportInfo(object string, params value.Value) (value.Value, error) {
	if object != discover.SupportInfoObject {
		return value.Null, nil
	}
	path, ok := params.String()
	if !ok {
		return value.NewFloat(0), nil
	}

	metaPath := path
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return value.NewFloat(0), nil
	case info.IsDir():
		metaPath = filepath.Join(path, "metadata")
	case filepath.Base(path) != "metadata":
		return value.NewFloat(0), nil
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return value.NewFloat(0), nil
	}

	source := location.MustSourceIDFromPath(metaPath)
	_, status, result := ctf.Decode(source, data)
	if status != ctf.Complete || !result.OK() {
		return value.NewFloat(0), nil
	}

	weight := value.NewMap()
	_ = weight.Insert("weight", value.NewFloat(0.75))
	_ = weight.Insert("group", value.NewString(filepath.Dir(metaPath)))
	return weight, nil
}
