// Package schema validates lax documents against JSON Schemas.
//
// Schemas are themselves documents, read from lax, JSON or YAML flow
// syntax by the lax parser.  Violations carry the node they refer to, so
// they can be reported at source positions like parse diagnostics.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/ir"
)

// Code is the diagnostic code of schema violations.
const Code = "Schema"

const resourceURL = "lax://schema.json"

var ErrSchema = errors.New("schema")

type Schema struct {
	s *jsonschema.Schema
}

// Violation is a value which does not satisfy the schema.
type Violation struct {
	// Pointer is the JSON pointer of the value.
	Pointer string
	Message string
	// Node is the value at Pointer.
	Node *ir.Node
}

// Compile compiles the schema held in node.
func Compile(node *ir.Node) (*Schema, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: empty schema", ErrSchema)
	}
	var d bytes.Buffer
	if err := encode.Encode(node, &d, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(resourceURL, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	s, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return &Schema{s: s}, nil
}

// Validate returns the violations of node, ordered by position.  A nil
// node is validated as null and its violations have a nil Node.
func (s *Schema) Validate(node *ir.Node) []Violation {
	err := s.s.Validate(ir.ToAny(node))
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Violation{{Message: err.Error(), Node: node}}
	}
	var res []Violation
	var leaves func(e *jsonschema.ValidationError)
	leaves = func(e *jsonschema.ValidationError) {
		if len(e.Causes) != 0 {
			for _, c := range e.Causes {
				leaves(c)
			}
			return
		}
		res = append(res, Violation{
			Pointer: e.InstanceLocation,
			Message: e.Message,
			Node:    Lookup(node, e.InstanceLocation),
		})
	}
	leaves(ve)
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].Node, res[j].Node
		if a == nil || b == nil || a.Start == b.Start {
			return res[i].Pointer < res[j].Pointer
		}
		return a.Start.Before(b.Start)
	})
	return res
}

// Lookup returns the node at JSON pointer ptr, or its deepest existing
// ancestor.  Where an object repeats a key, the last one counts, as in
// ir.ToAny.
func Lookup(node *ir.Node, ptr string) *ir.Node {
	if node == nil || ptr == "" {
		return node
	}
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		var next *ir.Node
		switch node.Type {
		case ir.ObjectType:
			for i := len(node.Fields) - 1; i >= 0; i-- {
				if node.Fields[i].String == tok {
					next = node.Values[i]
					break
				}
			}
		case ir.ArrayType:
			i, err := strconv.Atoi(tok)
			if err == nil && i >= 0 && i < len(node.Values) {
				next = node.Values[i]
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
	return node
}
