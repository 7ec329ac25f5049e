package ir

import (
	"encoding/json"

	"github.com/signadot/lax/token"
)

type irBase struct {
	Type   Type      `json:"type"`
	Start  token.Pos `json:"start"`
	End    token.Pos `json:"end"`
	Fields []*Node   `json:"fields,omitempty"`
	Values []*Node   `json:"values,omitempty"`
}

// MarshalJSON encodes the IR itself, spans included.  Use ToAny for the
// plain JSON value the node represents.
func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:   y.Type,
		Start:  y.Start,
		End:    y.End,
		Fields: y.Fields,
		Values: y.Values,
	}
	switch y.Type {
	case StringType:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: *base, String: y.String})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: y.Bool})
	case NumberType:
		type C struct {
			irBase
			Number float64 `json:"number"`
		}
		return json.Marshal(C{irBase: *base, Number: y.Number})
	default:
		return json.Marshal(base)
	}
}

// ToAny converts a node to plain Go values: map[string]any, []any, string,
// float64, bool and nil.  When an object has duplicate keys the last
// property wins.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case StringType:
		return y.String
	case NumberType:
		return y.Number
	case BoolType:
		return y.Bool
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	default:
		return nil
	}
}
