package main

import (
	"context"
	"strconv"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	syms := documentSymbols(doc, doc.node)
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

// documentSymbols returns one symbol per property or array item of node,
// nested following the tree.
func documentSymbols(doc *document, node *ir.Node) []protocol.DocumentSymbol {
	var res []protocol.DocumentSymbol
	switch node.Type {
	case ir.ObjectType:
		for i, k := range node.Fields {
			v := node.Values[i]
			name := k.String
			if name == "" {
				name = `""`
			}
			res = append(res, protocol.DocumentSymbol{
				Name:           name,
				Detail:         symbolDetail(v),
				Kind:           symbolKind(v.Type),
				Range:          doc.span(k, v),
				SelectionRange: doc.span(k, k),
				Children:       documentSymbols(doc, v),
			})
		}
	case ir.ArrayType:
		for i, v := range node.Values {
			res = append(res, protocol.DocumentSymbol{
				Name:           "[" + strconv.Itoa(i) + "]",
				Detail:         symbolDetail(v),
				Kind:           symbolKind(v.Type),
				Range:          doc.span(v, v),
				SelectionRange: doc.span(v, v),
				Children:       documentSymbols(doc, v),
			})
		}
	}
	return res
}

func (d *document) span(from, to *ir.Node) protocol.Range {
	return protocol.Range{Start: d.docPos(from.Start), End: d.docPos(to.End)}
}

func symbolKind(t ir.Type) protocol.SymbolKind {
	switch t {
	case ir.ObjectType:
		return protocol.SymbolKindObject
	case ir.ArrayType:
		return protocol.SymbolKindArray
	case ir.NumberType:
		return protocol.SymbolKindNumber
	case ir.BoolType:
		return protocol.SymbolKindBoolean
	case ir.NullType:
		return protocol.SymbolKindNull
	default:
		return protocol.SymbolKindString
	}
}

const maxDetail = 40

func symbolDetail(node *ir.Node) string {
	if !node.Type.IsLeaf() {
		return node.Type.String()
	}
	var b strings.Builder
	if err := encode.Encode(node, &b, encode.EncodeFlow(true)); err != nil {
		return node.Type.String()
	}
	s := strings.TrimSpace(b.String())
	if r := []rune(s); len(r) > maxDetail {
		s = string(r[:maxDetail-3]) + "..."
	}
	return s
}

func (s *Server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	return foldingRanges(doc), nil
}

// foldingRanges returns a range for each property or array item spanning
// more than one line.
func foldingRanges(doc *document) []protocol.FoldingRange {
	var res []protocol.FoldingRange
	add := func(from, to *ir.Node) {
		if to.End.Line <= from.Start.Line {
			return
		}
		res = append(res, protocol.FoldingRange{
			StartLine: doc.docPos(from.Start).Line,
			EndLine:   doc.docPos(to.End).Line,
		})
	}
	_ = doc.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		for i, v := range n.Values {
			if n.Type == ir.ObjectType {
				add(n.Fields[i], v)
			} else {
				add(v, v)
			}
		}
		return true, nil
	})
	return res
}
