package main

import "unicode/utf16"

// LSP characters count UTF-16 code units while token positions count
// runes.  Both conversions clamp to the line and pass positions on unknown
// lines through unchanged.

// utf16Char returns the UTF-16 offset of rune offset char on document line.
func (d *document) utf16Char(line, char int) int {
	if line < 0 || line >= len(d.lines) {
		return char
	}
	ln := d.lines[line]
	n := 0
	for i := 0; i < char && i < len(ln); i++ {
		n += utf16Len(ln[i])
	}
	if char > len(ln) {
		n += char - len(ln)
	}
	return n
}

// runeChar returns the rune offset of UTF-16 offset units on document line.
// An offset inside a surrogate pair maps to the rune holding it.
func (d *document) runeChar(line, units int) int {
	if line < 0 || line >= len(d.lines) {
		return units
	}
	ln := d.lines[line]
	n := 0
	for i, r := range ln {
		n += utf16Len(r)
		if n > units {
			return i
		}
	}
	return len(ln) + units - n
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// invalid runes are sent as U+FFFD
	return 1
}
