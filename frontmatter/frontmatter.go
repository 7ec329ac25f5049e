// Package frontmatter extracts a lax header delimited by "---" lines from
// a larger document and reports its diagnostics in the coordinates of the
// enclosing document.
//
//	---
//	title: hello
//	tags: [a, b]
//	---
//	body text
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
	"github.com/signadot/lax/token"
)

const (
	Delimiter = "---"
	// EndDelimiter may also close a header.
	EndDelimiter = "..."
)

// Document is a document split into its header and body.
type Document struct {
	// HasHeader is set when the document starts with a delimiter line.
	HasHeader bool
	// Terminated is set when the header has a closing delimiter.
	Terminated bool
	Header     string
	Body       string
	// HeaderLine is the zero-based line of the first header line in the
	// full document.
	HeaderLine int
	// BodyLine is the zero-based line of the first body line.
	BodyLine int
}

// Split splits doc.  If doc does not start with a delimiter line, it has no
// header and Body is all of doc.  A header with no closing delimiter runs
// to the end of doc.
func Split(doc string) *Document {
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || !isDelimiter(lines[0], false) {
		return &Document{Body: doc}
	}
	res := &Document{HasHeader: true, HeaderLine: 1}
	for i := 1; i < len(lines); i++ {
		if !isDelimiter(lines[i], true) {
			continue
		}
		res.Terminated = true
		res.Header = strings.Join(lines[1:i], "\n")
		res.Body = strings.Join(lines[i+1:], "\n")
		res.BodyLine = i + 1
		return res
	}
	res.Header = strings.Join(lines[1:], "\n")
	res.BodyLine = len(lines)
	return res
}

func isDelimiter(ln string, end bool) bool {
	ln = strings.TrimRight(ln, " \t\r")
	return ln == Delimiter || end && ln == EndDelimiter
}

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

const (
	// CodeNotObject reports a header whose root is not an object.
	CodeNotObject = "NotObject"
	// CodeUnterminated reports a header with no closing delimiter.
	CodeUnterminated = "Unterminated"
)

// HostPos is a one-based line and column in the full document.
type HostPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p HostPos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Range struct {
	Start HostPos `json:"start"`
	End   HostPos `json:"end"`
}

type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Range    Range    `json:"range"`
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", d.Range.Start, d.Severity, d.Code, d.Message)
}

// DocPos maps a zero-based position in the header to a zero-based position
// in the full document.
func (d *Document) DocPos(p token.Pos) token.Pos {
	return token.Pos{Line: p.Line + d.HeaderLine, Character: p.Character}
}

// HostPos maps a zero-based position in the header to a one-based position
// in the full document.
func (d *Document) HostPos(p token.Pos) HostPos {
	dp := d.DocPos(p)
	return HostPos{Line: dp.Line + 1, Column: dp.Character + 1}
}

// Parse parses the header.  It returns a nil node when there is no
// header or it is empty.  Parse diagnostics are mapped to host positions,
// and a header whose root is not an object or which is not terminated is
// reported.
func (d *Document) Parse(opts ...parse.ParseOption) (*ir.Node, []Diagnostic) {
	if !d.HasHeader {
		return nil, nil
	}
	var errs []parse.ParseError
	node := parse.Parse(d.Header, &errs, opts...)
	diags := make([]Diagnostic, 0, len(errs))
	for i := range errs {
		diags = append(diags, d.FromParseError(&errs[i]))
	}
	if node != nil && node.Type != ir.ObjectType {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     CodeNotObject,
			Message:  fmt.Sprintf("header must be an object, not %s", node.Type),
			Range:    Range{Start: d.HostPos(node.Start), End: d.HostPos(node.End)},
		})
	}
	if !d.Terminated {
		open := HostPos{Line: d.HeaderLine, Column: 1}
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeUnterminated,
			Message:  fmt.Sprintf("header has no closing %q", Delimiter),
			Range:    Range{Start: open, End: HostPos{Line: open.Line, Column: 1 + len(Delimiter)}},
		})
	}
	return node, diags
}

// FromParseError maps a header parse error to a host diagnostic.
func (d *Document) FromParseError(e *parse.ParseError) Diagnostic {
	sev := SeverityError
	if e.Code == parse.Indentation {
		sev = SeverityWarning
	}
	return Diagnostic{
		Severity: sev,
		Code:     e.Code.String(),
		Message:  e.Message,
		Range:    Range{Start: d.HostPos(e.Start), End: d.HostPos(e.End)},
	}
}
