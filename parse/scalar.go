package parse

import (
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

func (p *parser) parseValue() *ir.Node {
	p.cur.SkipWhitespace()
	if p.cur.AtEnd() {
		return emptyAt(p.cur.Pos())
	}
	switch c := p.cur.Current(); c {
	case '"', '\'':
		if closes(p.cur.Rest()[1:], c) {
			return p.parseQuotedString(c)
		}
		return p.parseUnquotedValue()
	case '[':
		return p.parseFlowArray()
	case '{':
		return p.parseFlowObject()
	default:
		return p.parseUnquotedValue()
	}
}

// parseQuotedString reads a string delimited by quote.  Characters are
// taken verbatim.  Callers check with closes that the closing quote is on
// the current line.
func (p *parser) parseQuotedString(quote rune) *ir.Node {
	start := p.cur.Pos()
	p.cur.Advance()
	var buf []rune
	for c := p.cur.Current(); c != quote && c != token.None; c = p.cur.Current() {
		buf = append(buf, c)
		p.cur.Advance()
	}
	p.cur.Advance()
	return ir.FromString(string(buf)).WithSpan(start, p.cur.Pos())
}

// isTerminator reports whether c ends a plain scalar: '#' always, ',' ']'
// and '}' only inside flow collections.
func (p *parser) isTerminator(c rune) bool {
	switch c {
	case token.None, '#':
		return true
	case ',', ']', '}':
		return p.flowLevel > 0
	}
	return false
}

func (p *parser) parseUnquotedValue() *ir.Node {
	start := p.cur.Pos()
	var buf []rune
	for c := p.cur.Current(); !p.isTerminator(c); c = p.cur.Current() {
		buf = append(buf, c)
		p.cur.Advance()
	}
	buf = trimRightSpace(buf)
	return createValueNode(string(buf), start, start.Right(len(buf)))
}

func trimRightSpace(rs []rune) []rune {
	n := len(rs)
	for n > 0 && (rs[n-1] == ' ' || rs[n-1] == '\t') {
		n--
	}
	return rs[:n]
}

// createValueNode classifies plain scalar text: empty, boolean, null,
// number, and string otherwise.
func createValueNode(text string, start, end token.Pos) *ir.Node {
	var node *ir.Node
	switch text {
	case "":
		return emptyAt(start)
	case "true":
		node = ir.FromBool(true)
	case "false":
		node = ir.FromBool(false)
	case "null", "~":
		node = ir.Null()
	default:
		if f, ok := token.ParseNumber(text); ok {
			node = ir.FromNumber(f)
		} else {
			node = ir.FromString(text)
		}
	}
	return node.WithSpan(start, end)
}
