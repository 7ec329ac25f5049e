package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/lax/format"
	"github.com/signadot/lax/ir"
)

type EncState struct {
	indent int
	flow   bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline.  A nil node writes
// nothing.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return nil
	}
	switch es.format {
	case format.JSONFormat:
		if err := encodeJSON(node, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(node, w)
	case format.CBORFormat:
		return encodeCBOR(node, w)
	}
	if es.flow || node.Type.IsLeaf() || len(node.Values) == 0 {
		if err := encodeFlow(node, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	return encodeBlock(node, w, "", es)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// Color application helpers

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func sep(es *EncState, t ir.Type, s string) string {
	return applyColor(es, t, SepColor, s)
}

// formatNumber writes f without an exponent, so it reads back as a
// number.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func scalar(node *ir.Node, es *EncState) (string, error) {
	switch node.Type {
	case ir.NullType:
		return applyColor(es, ir.NullType, ValueColor, "null"), nil
	case ir.BoolType:
		return applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)), nil
	case ir.NumberType:
		return applyColor(es, ir.NumberType, ValueColor, formatNumber(node.Number)), nil
	case ir.StringType:
		v, quoted, err := scalarString(node.String, es.flow)
		if err != nil {
			return "", err
		}
		attr := ValueColor
		if quoted {
			attr = QuotedColor
		}
		return applyColor(es, ir.StringType, attr, v), nil
	default:
		return "", fmt.Errorf("%w: %s is not a scalar", ErrEncoding, node.Type)
	}
}

func field(key *ir.Node, es *EncState) (string, error) {
	k, err := keyString(key.String, es.flow)
	if err != nil {
		return "", err
	}
	return applyColor(es, ir.ObjectType, FieldColor, k) + sep(es, ir.ObjectType, ":"), nil
}

// encodeFlow writes node on one line.  Inside brackets plain strings are
// also quoted when they hold ',', ']' or '}'.
func encodeFlow(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ArrayType:
		if err := writeString(w, sep(es, ir.ArrayType, "[")); err != nil {
			return err
		}
		inner := *es
		inner.flow = true
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, sep(es, ir.ArrayType, ",")+" "); err != nil {
					return err
				}
			}
			if err := encodeFlow(v, w, &inner); err != nil {
				return err
			}
		}
		return writeString(w, sep(es, ir.ArrayType, "]"))
	case ir.ObjectType:
		if err := writeString(w, sep(es, ir.ObjectType, "{")); err != nil {
			return err
		}
		inner := *es
		inner.flow = true
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, sep(es, ir.ObjectType, ",")+" "); err != nil {
					return err
				}
			}
			f, err := field(node.Fields[i], &inner)
			if err != nil {
				return err
			}
			if err := writeString(w, f+" "); err != nil {
				return err
			}
			if err := encodeFlow(v, w, &inner); err != nil {
				return err
			}
		}
		return writeString(w, sep(es, ir.ObjectType, "}"))
	default:
		v, err := scalar(node, es)
		if err != nil {
			return err
		}
		return writeString(w, v)
	}
}

// inline reports whether node is written on the line of its key or dash.
func inline(node *ir.Node) bool {
	return node.Type.IsLeaf() || len(node.Values) == 0
}

// encodeBlock writes a non-empty collection, one entry per line, each
// line starting with prefix.
func encodeBlock(node *ir.Node, w io.Writer, prefix string, es *EncState) error {
	if node.Type == ir.ObjectType {
		return encodeBlockObject(node, w, prefix, prefix, es)
	}
	return encodeBlockArray(node, w, prefix, es)
}

// encodeBlockObject writes the first property after first and the others
// after rest.  They differ for an object starting on an array item's dash
// line.
func encodeBlockObject(node *ir.Node, w io.Writer, first, rest string, es *EncState) error {
	step := strings.Repeat(" ", es.indent)
	for i, v := range node.Values {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		f, err := field(node.Fields[i], es)
		if err != nil {
			return err
		}
		if err := writeString(w, prefix+f); err != nil {
			return err
		}
		if inline(v) {
			if err := encodeInline(v, w, es); err != nil {
				return err
			}
			continue
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		if err := encodeBlock(v, w, rest+step, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeBlockArray(node *ir.Node, w io.Writer, prefix string, es *EncState) error {
	step := strings.Repeat(" ", es.indent)
	dash := sep(es, ir.ArrayType, "-")
	for _, v := range node.Values {
		switch {
		case v.Type == ir.StringType && strings.Contains(v.String, ":"):
			// a colon on the dash line makes the item an object, so the
			// string goes on the next line.
			if err := writeString(w, prefix+dash+"\n"+prefix+step); err != nil {
				return err
			}
			if err := encodeFlow(v, w, es); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		case inline(v):
			if err := writeString(w, prefix+dash); err != nil {
				return err
			}
			if err := encodeInline(v, w, es); err != nil {
				return err
			}
		case v.Type == ir.ObjectType:
			pad := strings.Repeat(" ", max(es.indent, 2)-1)
			if err := encodeBlockObject(v, w, prefix+dash+pad, prefix+" "+pad, es); err != nil {
				return err
			}
		default:
			if err := writeString(w, prefix+dash+"\n"); err != nil {
				return err
			}
			if err := encodeBlock(v, w, prefix+step, es); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeInline(v *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, " "); err != nil {
		return err
	}
	if err := encodeFlow(v, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// encodeJSON writes node as JSON.  Object properties keep their order and
// duplicates.
func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ArrayType:
		if err := writeString(w, "["); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, "]")
	case ir.ObjectType:
		if err := writeString(w, "{"); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			k, err := json.Marshal(node.Fields[i].String)
			if err != nil {
				return err
			}
			if err := writeString(w, applyColor(es, ir.ObjectType, FieldColor, string(k))+":"); err != nil {
				return err
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, "}")
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.StringType, QuotedColor, string(d)))
	default:
		v, err := scalar(node, es)
		if err != nil {
			return err
		}
		return writeString(w, v)
	}
}
