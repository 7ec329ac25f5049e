package main

import (
	"context"
	"sort"

	"go.lsp.dev/protocol"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
)

// tokenTypes is the semantic token legend.  Token type indices refer to it.
var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenKeyword,
}

// Map color attributes to LSP semantic token types
func mapColorToSemanticTokenType(nodeType ir.Type, attr encode.ColorAttr) protocol.SemanticTokenTypes {
	switch attr {
	case encode.FieldColor:
		return protocol.SemanticTokenProperty
	case encode.QuotedColor:
		return protocol.SemanticTokenString
	case encode.ValueColor:
		switch nodeType {
		case ir.NumberType:
			return protocol.SemanticTokenNumber
		case ir.BoolType, ir.NullType:
			return protocol.SemanticTokenKeyword
		}
	}
	return protocol.SemanticTokenString
}

type tokenInfo struct {
	line      uint32
	character uint32
	length    uint32
	tokenType protocol.SemanticTokenTypes
}

// collectTokens returns the tokens of doc's keys and scalar values in
// document order.  Tokens spanning lines or of zero width are left out.
func collectTokens(doc *document) []tokenInfo {
	if doc.node == nil {
		return nil
	}
	var res []tokenInfo
	add := func(n *ir.Node, attr encode.ColorAttr) {
		if n.Start.Line != n.End.Line || n.End.Character <= n.Start.Character {
			return
		}
		p, e := doc.docPos(n.Start), doc.docPos(n.End)
		res = append(res, tokenInfo{
			line:      p.Line,
			character: p.Character,
			length:    e.Character - p.Character,
			tokenType: mapColorToSemanticTokenType(n.Type, attr),
		})
	}
	var walk func(n *ir.Node)
	walk = func(n *ir.Node) {
		for i, v := range n.Values {
			if n.Type == ir.ObjectType {
				add(n.Fields[i], encode.FieldColor)
			}
			walk(v)
		}
		if n.Type.IsLeaf() {
			add(n, encode.ValueColor)
		}
	}
	walk(doc.node)
	sort.Slice(res, func(i, j int) bool {
		if res[i].line != res[j].line {
			return res[i].line < res[j].line
		}
		return res[i].character < res[j].character
	})
	return res
}

// encodeTokens delta encodes tokens in the LSP wire layout.
func encodeTokens(tokens []tokenInfo) []uint32 {
	typeMap := make(map[protocol.SemanticTokenTypes]uint32, len(tokenTypes))
	for i, tt := range tokenTypes {
		typeMap[tt] = uint32(i)
	}
	data := make([]uint32, 0, 5*len(tokens))
	var prevLine, prevChar uint32
	for _, ti := range tokens {
		deltaLine := ti.line - prevLine
		deltaChar := ti.character
		if deltaLine == 0 {
			deltaChar = ti.character - prevChar
		}
		data = append(data, deltaLine, deltaChar, ti.length, typeMap[ti.tokenType], 0)
		prevLine = ti.line
		prevChar = ti.character
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: encodeTokens(collectTokens(doc))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	var in []tokenInfo
	for _, ti := range collectTokens(doc) {
		if ti.line >= params.Range.Start.Line && ti.line <= params.Range.End.Line {
			in = append(in, ti)
		}
	}
	return &protocol.SemanticTokens{Data: encodeTokens(in)}, nil
}
