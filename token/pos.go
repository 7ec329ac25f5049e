package token

import (
	"cmp"
	"fmt"
)

// Pos is a zero-based (line, character) location in a document.
// Characters are counted in runes.
type Pos struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (p Pos) Compare(o Pos) int {
	if c := cmp.Compare(p.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Character, o.Character)
}

func (p Pos) Before(o Pos) bool {
	return p.Compare(o) < 0
}

// Right returns p moved n characters to the right on the same line.
func (p Pos) Right(n int) Pos {
	return Pos{Line: p.Line, Character: p.Character + n}
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}
