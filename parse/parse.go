package parse

import (
	"github.com/signadot/lax/debug"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

// Parse parses d and returns its root node, or nil if d holds no value
// (empty, blank or comments only).  Diagnostics are appended to errs,
// which may be nil to discard them.  Parse never fails: malformed input
// degrades into a best effort tree.
func Parse(d string, errs *[]ParseError, opts ...ParseOption) *ir.Node {
	pOpts := &parseOpts{trace: debug.Parse()}
	for _, f := range opts {
		f(pOpts)
	}
	if errs == nil {
		errs = &[]ParseError{}
	}
	p := &parser{
		cur:  token.NewCursorString(d),
		errs: errs,
		opts: pOpts,
	}
	return p.parse()
}

// ParseString is like Parse but returns the diagnostics.
func ParseString(d string, opts ...ParseOption) (*ir.Node, []ParseError) {
	var errs []ParseError
	node := Parse(d, &errs, opts...)
	return node, errs
}

type parser struct {
	cur  *token.Cursor
	errs *[]ParseError
	opts *parseOpts

	// depth of [...] and {...} nesting, 0 at block level
	flowLevel int
}

func (p *parser) errorf(e ParseError) {
	if p.opts.trace {
		debug.Logf("lax: %s %s-%s: %s\n", e.Code, e.Start, e.End, e.Message)
	}
	*p.errs = append(*p.errs, e)
}

func (p *parser) tracef(msg string, args ...any) {
	if !p.opts.trace {
		return
	}
	debug.Logf("lax: %s: "+msg+"\n", append([]any{p.cur.Pos()}, args...)...)
}

func (p *parser) parse() *ir.Node {
	if p.cur.NumLines() == 0 {
		return nil
	}
	p.cur.MoveToNextNonEmptyLine()
	c := p.cur.Current()
	switch {
	case c == token.None:
		return nil
	case c == '-' && isMarkerEnd(p.cur.Peek(1)):
		p.tracef("root block array")
		return p.parseBlockArray(0)
	case c == '[':
		p.tracef("root flow array")
		return p.parseFlowArray()
	case c == '{':
		p.tracef("root flow object")
		return p.parseFlowObject()
	case hasKeyColon(p.cur.Rest(), true):
		p.tracef("root block object")
		return p.parseBlockObject(0)
	default:
		p.tracef("root scalar")
		return p.parseValue()
	}
}

// isMarkerEnd reports whether r may follow a '-' block array marker.
func isMarkerEnd(r rune) bool {
	switch r {
	case ' ', '\t', '#', token.None:
		return true
	}
	return false
}

func (p *parser) atMarker() bool {
	return p.cur.Current() == '-' && isMarkerEnd(p.cur.Peek(1))
}

// hasKeyColon reports whether ln holds a ':' before any comment.  When
// quoteAware is set, colons and '#' inside balanced quotes are ignored.
func hasKeyColon(ln []rune, quoteAware bool) bool {
	return keyColon(ln, quoteAware) != -1
}

// keyColon returns the index of the first key colon in ln, or -1.  The
// key ends there, so "t: 12:30" has key "t" and "a:b" has key "a".
func keyColon(ln []rune, quoteAware bool) int {
	var quote rune
	for i, r := range ln {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			if quoteAware && closes(ln[i+1:], r) {
				quote = r
			}
		case '#':
			return -1
		case ':':
			return i
		}
	}
	return -1
}

func closes(ln []rune, quote rune) bool {
	for _, r := range ln {
		if r == quote {
			return true
		}
	}
	return false
}

func emptyAt(pos token.Pos) *ir.Node {
	return ir.FromString("").WithSpan(pos, pos)
}

func isZeroEmpty(n *ir.Node) bool {
	return n.Type == ir.StringType && n.String == "" && n.Start == n.End
}
