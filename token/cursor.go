package token

import "strings"

// None is returned by Cursor lookups at end of line and end of input.
const None rune = -1

// TabWidth is the number of spaces a tab counts for in Indentation.
const TabWidth = 4

// SplitLines splits d into lines on "\r\n" or "\n".  An empty document has
// no lines.
func SplitLines(d string) [][]rune {
	if d == "" {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(d, "\r\n", "\n"), "\n")
	res := make([][]rune, len(parts))
	for i, part := range parts {
		res[i] = []rune(part)
	}
	return res
}

// Cursor traverses a line-split document one character at a time.
//
// The cursor never fails.  Once all lines are exhausted it holds its
// position at the end of the last line and AtEnd reports true.
type Cursor struct {
	lines [][]rune
	line  int
	char  int
}

func NewCursor(lines [][]rune) *Cursor {
	return &Cursor{lines: lines}
}

// NewCursorString splits d with SplitLines and returns a cursor over it.
func NewCursorString(d string) *Cursor {
	return NewCursor(SplitLines(d))
}

func (c *Cursor) NumLines() int {
	return len(c.lines)
}

// Line returns the current line.
func (c *Cursor) Line() []rune {
	if c.line >= len(c.lines) {
		return nil
	}
	return c.lines[c.line]
}

// LineLen returns the length of line i in characters, 0 if out of range.
func (c *Cursor) LineLen(i int) int {
	if i < 0 || i >= len(c.lines) {
		return 0
	}
	return len(c.lines[i])
}

// Rest returns the unconsumed part of the current line.
func (c *Cursor) Rest() []rune {
	ln := c.Line()
	if c.char >= len(ln) {
		return nil
	}
	return ln[c.char:]
}

func (c *Cursor) Pos() Pos {
	return Pos{Line: c.line, Character: c.char}
}

// Restore rewinds (or forwards) the cursor to p, which must have been
// obtained from Pos on the same cursor.
func (c *Cursor) Restore(p Pos) {
	c.line, c.char = p.Line, p.Character
}

func (c *Cursor) AtEnd() bool {
	n := len(c.lines)
	if n == 0 || c.line >= n {
		return true
	}
	return c.line == n-1 && c.char >= len(c.lines[c.line])
}

// Current returns the character under the cursor or None at end of line.
func (c *Cursor) Current() rune {
	return c.Peek(0)
}

// Peek returns the character off positions ahead on the current line, or
// None.
func (c *Cursor) Peek(off int) rune {
	ln := c.Line()
	i := c.char + off
	if i < 0 || i >= len(ln) {
		return None
	}
	return ln[i]
}

// Advance consumes the current character and returns it.  At end of line
// it moves to the start of the next line and returns '\n'; at end of input
// it returns None without moving.
func (c *Cursor) Advance() rune {
	if c.AtEnd() {
		return None
	}
	ln := c.lines[c.line]
	if c.char < len(ln) {
		r := ln[c.char]
		c.char++
		return r
	}
	c.line++
	c.char = 0
	return '\n'
}

// AdvanceLine moves to the start of the next line, or to the end of the
// last line.
func (c *Cursor) AdvanceLine() {
	n := len(c.lines)
	if n == 0 {
		return
	}
	if c.line < n-1 {
		c.line++
		c.char = 0
		return
	}
	c.line = n - 1
	c.char = len(c.lines[c.line])
}

func (c *Cursor) SkipWhitespace() {
	for {
		switch c.Current() {
		case ' ', '\t':
			c.char++
		default:
			return
		}
	}
}

func (c *Cursor) SkipToEndOfLine() {
	c.char = len(c.Line())
}

// Indentation counts the leading whitespace of the current line, a tab
// counting for TabWidth spaces.
func (c *Cursor) Indentation() int {
	n := 0
	for _, r := range c.Line() {
		switch r {
		case ' ':
			n++
		case '\t':
			n += TabWidth
		default:
			return n
		}
	}
	return n
}

// MoveToNextNonEmptyLine skips blank lines and comment-only lines and
// leaves the cursor on the first significant character.  If the rest of
// the current line is significant it only skips whitespace.
func (c *Cursor) MoveToNextNonEmptyLine() {
	for {
		c.SkipWhitespace()
		if r := c.Current(); r != None && r != '#' {
			return
		}
		last := c.line >= len(c.lines)-1
		c.AdvanceLine()
		if last {
			return
		}
	}
}
