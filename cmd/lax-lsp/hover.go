package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	pos, ok := doc.nodePos(params.Position)
	if !ok {
		return nil, nil
	}
	target, path := findNodeAtPosition(doc.node, pos)
	if target == nil {
		return nil, nil
	}
	r := doc.span(target, target)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(target, path),
		},
		Range: &r,
	}, nil
}

// findNodeAtPosition returns the innermost value whose span contains pos
// together with its path.  A position on a key finds the key's value.
func findNodeAtPosition(root *ir.Node, pos token.Pos) (*ir.Node, string) {
	if !contains(root, pos) {
		return nil, ""
	}
	node, path := root, "$"
outer:
	for {
		for i, v := range node.Values {
			if node.Type == ir.ObjectType {
				k := node.Fields[i]
				if contains(k, pos) || contains(v, pos) {
					node, path = v, path+"."+ir.PathField(k.String)
					continue outer
				}
				continue
			}
			if contains(v, pos) {
				node, path = v, fmt.Sprintf("%s[%d]", path, i)
				continue outer
			}
		}
		return node, path
	}
}

func contains(n *ir.Node, pos token.Pos) bool {
	return !pos.Before(n.Start) && !n.End.Before(pos)
}

func buildHoverText(node *ir.Node, path string) string {
	parts := []string{
		fmt.Sprintf("**Type:** %s", getTypeInfo(node)),
		fmt.Sprintf("**Path:** `%s`", path),
	}
	switch node.Type {
	case ir.ObjectType:
		parts = append(parts, fmt.Sprintf("**Properties:** %d", len(node.Fields)))
	case ir.ArrayType:
		parts = append(parts, fmt.Sprintf("**Items:** %d", len(node.Values)))
	default:
		if v := getValueInfo(node); v != "" {
			parts = append(parts, fmt.Sprintf("**Value:** %s", v))
		}
	}
	return strings.Join(parts, "\n\n")
}

func getTypeInfo(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "boolean"
	case ir.NumberType:
		return "number"
	case ir.StringType:
		return "string"
	case ir.ArrayType:
		return "array"
	case ir.ObjectType:
		return "object"
	default:
		return "unknown"
	}
}

func getValueInfo(node *ir.Node) string {
	if node.Type == ir.StringType {
		if node.String == "" {
			return "(empty)"
		}
		return fmt.Sprintf("`%s`", strings.ReplaceAll(node.String, "`", "\\`"))
	}
	var b strings.Builder
	if err := encode.Encode(node, &b, encode.EncodeFlow(true)); err != nil {
		return ""
	}
	return fmt.Sprintf("`%s`", strings.TrimSpace(b.String()))
}
