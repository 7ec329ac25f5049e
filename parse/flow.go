package parse

import (
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

// flowStep handles what may come between flow collection items: closing
// delimiters, line ends and comments.  It returns done when the collection
// is finished, and more when it consumed something and the caller should
// look again.
func (p *parser) flowStep(closer rune) (done, more bool) {
	p.cur.SkipWhitespace()
	if p.cur.AtEnd() {
		return true, false
	}
	switch p.cur.Current() {
	case closer:
		p.cur.Advance()
		return true, false
	case token.None:
		p.cur.Advance()
		return false, true
	case '#':
		p.cur.SkipToEndOfLine()
		p.cur.AdvanceLine()
		return false, true
	}
	return false, false
}

// guard forces progress when an item attempt consumed nothing.  It
// returns false if the input is exhausted.
func (p *parser) guard(before token.Pos) bool {
	if p.cur.Pos() != before {
		return true
	}
	if p.cur.AtEnd() {
		return false
	}
	p.tracef("forcing progress past %q", p.cur.Current())
	p.cur.Advance()
	return true
}

func (p *parser) skipComma() {
	p.cur.SkipWhitespace()
	if p.cur.Current() == ',' {
		p.cur.Advance()
	}
}

func (p *parser) parseFlowArray() *ir.Node {
	start := p.cur.Pos()
	p.cur.Advance()
	p.flowLevel++
	defer func() { p.flowLevel-- }()

	arr := &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	for {
		done, more := p.flowStep(']')
		if done {
			break
		}
		if more {
			continue
		}
		before := p.cur.Pos()
		item := p.parseValue()
		// a comment line followed by a leading comma yields an empty
		// item with no span; quoted "" always has a span.
		if !isZeroEmpty(item) {
			arr.Values = append(arr.Values, item)
		}
		p.skipComma()
		if !p.guard(before) {
			break
		}
	}
	return arr.WithSpan(start, p.cur.Pos())
}

func (p *parser) parseFlowObject() *ir.Node {
	start := p.cur.Pos()
	p.cur.Advance()
	p.flowLevel++
	defer func() { p.flowLevel-- }()

	obj := &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}
	seen := map[string]bool{}
	for {
		done, more := p.flowStep('}')
		if done {
			break
		}
		if more {
			continue
		}
		before := p.cur.Pos()
		key := p.parseFlowKey()
		p.cur.SkipWhitespace()
		var val *ir.Node
		hasColon := p.cur.Current() == ':'
		if hasColon {
			p.cur.Advance()
			val = p.parseValue()
		} else {
			val = emptyAt(p.cur.Pos())
		}
		if hasColon || !isZeroEmpty(key) {
			p.addProperty(obj, seen, key, val)
		}
		p.skipComma()
		if !p.guard(before) {
			break
		}
	}
	return obj.WithSpan(start, p.cur.Pos())
}

// parseFlowKey reads a quoted key or plain text up to ':'.
func (p *parser) parseFlowKey() *ir.Node {
	c := p.cur.Current()
	if (c == '"' || c == '\'') && closes(p.cur.Rest()[1:], c) {
		return p.parseQuotedString(c)
	}
	start := p.cur.Pos()
	var buf []rune
	for c := p.cur.Current(); c != ':' && !p.isTerminator(c); c = p.cur.Current() {
		buf = append(buf, c)
		p.cur.Advance()
	}
	buf = trimRightSpace(buf)
	return ir.FromString(string(buf)).WithSpan(start, start.Right(len(buf)))
}

// addProperty appends a property to obj, reporting a duplicate key unless
// duplicates are allowed.  The property is added in both cases.
func (p *parser) addProperty(obj *ir.Node, seen map[string]bool, key, val *ir.Node) {
	if seen[key.String] && !p.opts.allowDuplicateKeys {
		p.errorf(duplicateKeyErr(key))
	}
	seen[key.String] = true
	obj.Fields = append(obj.Fields, key)
	obj.Values = append(obj.Values, val)
}
