package parse

import (
	"fmt"

	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

// parseBlockArray parses "- item" lines indented at least baseIndent.
func (p *parser) parseBlockArray(baseIndent int) *ir.Node {
	arr := &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	start := p.cur.Pos()
	for {
		p.cur.MoveToNextNonEmptyLine()
		if p.cur.Current() == token.None {
			break
		}
		indent := p.cur.Indentation()
		if indent < baseIndent || !p.atMarker() {
			break
		}
		if len(arr.Values) == 0 {
			start = p.cur.Pos()
		}
		arr.Values = append(arr.Values, p.parseBlockItem(indent))
	}
	return p.blockSpan(arr, start)
}

func (p *parser) parseBlockItem(indent int) *ir.Node {
	p.cur.Advance()
	p.cur.SkipWhitespace()
	switch c := p.cur.Current(); c {
	case token.None, '#':
		at := p.cur.Pos()
		p.cur.AdvanceLine()
		return p.parseContinuation(indent, at)
	case '[', '{':
		// a flow collection is the item itself, colons within it do not
		// start a block object.
	default:
		// the dash line is scanned without regard to quotes.
		if hasKeyColon(p.cur.Rest(), false) {
			p.tracef("block object in array item")
			return p.parseBlockObjectAt(p.cur.Pos().Character)
		}
	}
	val := p.parseValue()
	p.finishLine()
	return val
}

// parseContinuation parses the value of an array item or property whose
// own line ends after the marker or colon.  A deeper next line holds a
// nested array, a nested object or a scalar.  Otherwise the value is an
// empty string at pos.
func (p *parser) parseContinuation(parentIndent int, at token.Pos) *ir.Node {
	p.cur.MoveToNextNonEmptyLine()
	if p.cur.Current() == token.None {
		return emptyAt(at)
	}
	indent := p.cur.Indentation()
	if indent <= parentIndent {
		return emptyAt(at)
	}
	switch {
	case p.atMarker():
		p.tracef("nested block array at %d", indent)
		return p.parseBlockArray(indent)
	case hasKeyColon(p.cur.Rest(), true):
		p.tracef("nested block object at %d", indent)
		return p.parseBlockObject(indent)
	}
	val := p.parseValue()
	p.finishLine()
	return val
}

// parseBlockObject parses "key: value" lines anchored at baseIndent.
// Lines indented deeper than baseIndent are reported and parsed as
// properties of this object.
func (p *parser) parseBlockObject(baseIndent int) *ir.Node {
	return p.blockObject(baseIndent, -1)
}

// parseBlockObjectAt parses an object whose first key starts at the
// cursor, after an array item's dash.  Following lines belong to it while
// their first character is at column or beyond.
func (p *parser) parseBlockObjectAt(column int) *ir.Node {
	return p.blockObject(0, column)
}

func (p *parser) blockObject(baseIndent, column int) *ir.Node {
	obj := &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}
	seen := map[string]bool{}
	start := p.cur.Pos()
	for {
		p.cur.MoveToNextNonEmptyLine()
		if p.cur.Current() == token.None {
			break
		}
		indent := p.cur.Indentation()
		if column >= 0 {
			col := p.cur.Pos().Character
			if col < column {
				break
			}
			indent = col
		} else {
			if indent < baseIndent {
				break
			}
			if indent > baseIndent {
				p.indentationErr(baseIndent, indent)
			}
		}
		if len(obj.Fields) == 0 {
			start = p.cur.Pos()
		}
		key, val := p.parseBlockProperty(indent)
		p.addProperty(obj, seen, key, val)
	}
	return p.blockSpan(obj, start)
}

func (p *parser) indentationErr(want, got int) {
	ln := p.cur.Pos().Line
	p.errorf(ParseError{
		Message: fmt.Sprintf("unexpected indentation: expected %d, got %d", want, got),
		Code:    Indentation,
		Start:   token.Pos{Line: ln},
		End:     token.Pos{Line: ln, Character: p.cur.LineLen(ln)},
	})
}

// parseBlockProperty reads "key: value" starting at the cursor.  A line
// with no key colon is a key with an empty value.
func (p *parser) parseBlockProperty(indent int) (key, val *ir.Node) {
	keyStart := p.cur.Pos()
	rest := p.cur.Rest()
	i := keyColon(rest, true)
	var keyText []rune
	if i == -1 {
		keyText = upToComment(rest)
	} else {
		keyText = rest[:i]
	}
	keyText = trimRightSpace(keyText)
	keyEnd := keyStart.Right(len(keyText))
	key = ir.FromString(unquoteKey(keyText)).WithSpan(keyStart, keyEnd)
	if i == -1 {
		p.finishLine()
		return key, emptyAt(keyEnd)
	}
	p.skip(i + 1)
	p.cur.SkipWhitespace()
	switch p.cur.Current() {
	case token.None, '#':
		at := p.cur.Pos()
		p.cur.AdvanceLine()
		return key, p.parseContinuation(indent, at)
	}
	val = p.parseValue()
	p.finishLine()
	return key, val
}

func upToComment(rs []rune) []rune {
	for i, r := range rs {
		if r == '#' {
			return rs[:i]
		}
	}
	return rs
}

// unquoteKey strips one pair of matching quotes around a key.
func unquoteKey(rs []rune) string {
	n := len(rs)
	if n >= 2 && (rs[0] == '"' || rs[0] == '\'') && rs[n-1] == rs[0] {
		return string(rs[1 : n-1])
	}
	return string(rs)
}

func (p *parser) skip(n int) {
	for range n {
		p.cur.Advance()
	}
}

// finishLine discards the rest of the current line, comment included, and
// moves to the next one.
func (p *parser) finishLine() {
	p.cur.SkipToEndOfLine()
	p.cur.AdvanceLine()
}

// blockSpan sets the span of a block collection from start to the end of
// its last child.  An empty collection gets a one character span.
func (p *parser) blockSpan(node *ir.Node, start token.Pos) *ir.Node {
	n := len(node.Values)
	if n == 0 {
		end := start
		if start.Character < p.cur.LineLen(start.Line) {
			end = start.Right(1)
		}
		return node.WithSpan(start, end)
	}
	end := node.Values[n-1].End
	if node.Type == ir.ObjectType {
		if kEnd := node.Fields[n-1].End; end.Before(kEnd) {
			end = kEnd
		}
	}
	return node.WithSpan(start, end)
}
