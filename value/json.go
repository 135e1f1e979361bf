package value

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ToJSON converts v to a plain Go value tree (map[string]any, []any, and
// scalars) suitable for json.Marshal. It is the machine-readable rendering
// used by the query verb.
func (v Value) ToJSON() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, 0, len(v.c.arr))
		for _, e := range v.c.arr {
			out = append(out, e.ToJSON())
		}
		return out
	case KindMap:
		out := make(map[string]any, v.c.m.len())
		for _, k := range v.c.m.keys {
			e, _ := v.c.m.get(k)
			out[k] = e.ToJSON()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON renders v as JSON via [Value.ToJSON], satisfying
// [json.Marshaler] for the query verb's machine-readable output.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToJSON())
}

// FromJSONC parses JSONC (JSON with // and /* */ comments and trailing
// commas, as used by plugin manifests) into a Value tree. Comments are
// stripped with [jsonc.ToJSON] before handing the result to encoding/json.
func FromJSONC(src []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(jsonc.ToJSON(src), &raw); err != nil {
		return Value{}, fmt.Errorf("parse jsonc: %w", err)
	}
	return fromAny(raw)
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null, nil
	case bool:
		return NewBool(t), nil
	case float64:
		if t == float64(int64(t)) {
			return NewInt(int64(t)), nil
		}
		return NewFloat(t), nil
	case string:
		return NewString(t), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for _, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return NewArray(elems...), nil
	case map[string]any:
		m := NewMap()
		for k, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			if err := m.Insert(k, v); err != nil {
				return Value{}, fmt.Errorf("insert key %q: %w", k, err)
			}
		}
		return m, nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value of type %T", raw)
	}
}
