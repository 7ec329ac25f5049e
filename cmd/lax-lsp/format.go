package main

import (
	"bytes"
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	return formatEdits(doc, int(params.Options.TabSize)), nil
}

// formatEdits returns the edit replacing the lax content of doc with its
// block encoding.  There are no edits if the content would lose comments,
// does not read back the same or is already formatted.
func formatEdits(doc *document, indent int) []protocol.TextEdit {
	if doc.node == nil {
		return nil
	}
	src := doc.content
	start, end := protocol.Position{}, protocol.Position{Line: uint32(lineCount(src))}
	if doc.header {
		if !doc.split.Terminated {
			return nil
		}
		src = doc.split.Header
		start.Line = uint32(doc.split.HeaderLine)
		end.Line = uint32(doc.split.BodyLine - 1)
	}
	// the encoder does not keep comments.
	if strings.Contains(src, "#") {
		return nil
	}
	var buf bytes.Buffer
	if err := encode.Encode(doc.node, &buf, encode.EncodeIndent(max(indent, 2))); err != nil {
		return nil
	}
	formatted := buf.String()
	back := parse.Parse(formatted, nil, parse.AllowDuplicateKeys(true))
	if !ir.Equal(doc.node, back) {
		theLog.Warn("formatting is unstable", "uri", doc.uri)
		return nil
	}
	if doc.header && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	if formatted == src {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{Start: start, End: end},
		NewText: formatted,
	}}
}

// lineCount counts the lines of d, including a final unterminated one.
func lineCount(d string) int {
	n := strings.Count(d, "\n")
	if len(d) > 0 && d[len(d)-1] != '\n' {
		n++
	}
	return n
}
