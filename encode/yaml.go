package encode

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/lax/ir"
)

// ToYAMLValue converts node to values go-yaml marshals in source order:
// objects become yaml.MapSlice, keeping duplicate keys.
func ToYAMLValue(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToYAMLValue(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToYAMLValue(v)
		}
		return res
	default:
		return ir.ToAny(node)
	}
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	d, err := yaml.Marshal(ToYAMLValue(node))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
