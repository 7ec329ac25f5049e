package main

import (
	"context"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/signadot/lax/debug"
	"github.com/signadot/lax/frontmatter"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
	"github.com/signadot/lax/token"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	node    *ir.Node
	diags   []frontmatter.Diagnostic
	// header is set for documents whose lax content is a front matter
	// header.  Node spans are then relative to the header and lineOffset
	// maps them to document lines.
	header     bool
	lineOffset int
	split      *frontmatter.Document
	// lines of content, for UTF-16 conversions
	lines [][]rune
}

// headerMode reports whether uri names a document carrying lax front matter.
func headerMode(uri string) bool {
	return strings.HasSuffix(uri, ".md")
}

func newDocument(uri, content string, version int32) *document {
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
		header:  headerMode(uri),
		lines:   token.SplitLines(content),
	}
	if doc.header {
		doc.split = frontmatter.Split(content)
		doc.lineOffset = doc.split.HeaderLine
		doc.node, doc.diags = doc.split.Parse()
		return doc
	}
	var errs []parse.ParseError
	doc.node = parse.Parse(content, &errs)
	doc.split = &frontmatter.Document{Body: content}
	for i := range errs {
		doc.diags = append(doc.diags, doc.split.FromParseError(&errs[i]))
	}
	return doc
}

// docPos maps a node position to a document position.
func (d *document) docPos(p token.Pos) protocol.Position {
	line := p.Line + d.lineOffset
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(d.utf16Char(line, p.Character)),
	}
}

// nodePos maps a document position to a node position.  ok is false when
// the position lies outside the parsed content.
func (d *document) nodePos(p protocol.Position) (token.Pos, bool) {
	line := int(p.Line) - d.lineOffset
	if line < 0 {
		return token.Pos{}, false
	}
	if d.header && d.split.Terminated && int(p.Line) >= d.split.BodyLine-1 {
		return token.Pos{}, false
	}
	return token.Pos{Line: line, Character: d.runeChar(int(p.Line), int(p.Character))}, true
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	if debug.LSP() {
		debug.LogAny(params)
	}
	uri := string(params.TextDocument.URI)
	s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if debug.LSP() {
		debug.LogAny(params)
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := string(params.TextDocument.URI)
	// full sync: the last change holds the whole text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.put(uri, text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	if s.conn != nil {
		return s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validateDocument(doc)
	if s.conn != nil {
		err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
		if err != nil {
			theLog.Error("publish diagnostics", "uri", uri, "err", err)
		}
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.diags))
	for i := range doc.diags {
		diagnostics = append(diagnostics, doc.toProtocol(&doc.diags[i]))
	}
	return diagnostics
}

func (d *document) toProtocol(diag *frontmatter.Diagnostic) protocol.Diagnostic {
	sev := protocol.DiagnosticSeverityError
	if diag.Severity == frontmatter.SeverityWarning {
		sev = protocol.DiagnosticSeverityWarning
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: d.hostPosition(diag.Range.Start),
			End:   d.hostPosition(diag.Range.End),
		},
		Severity: sev,
		Code:     diag.Code,
		Source:   "lax",
		Message:  diag.Message,
	}
}

// hostPosition maps a one-based position to a protocol position.
func (d *document) hostPosition(p frontmatter.HostPos) protocol.Position {
	line := max(p.Line-1, 0)
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(d.utf16Char(line, max(p.Column-1, 0))),
	}
}
