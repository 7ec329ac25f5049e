package token

import (
	"math"
	"strconv"
)

// IsNumber reports whether s is an optional sign, optional digits, an
// optional single dot and at least one digit, and parses as a finite
// float64.
func IsNumber(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// ParseNumber parses s as described by IsNumber.
func ParseNumber(s string) (float64, bool) {
	if !numberShape(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func numberShape(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	dot := false
	last := byte(0)
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
		last = c
	}
	return last >= '0' && last <= '9'
}

// IsKeyword reports whether s is one of the words which plain scalars
// classify as a boolean or null.
func IsKeyword(s string) bool {
	switch s {
	case "true", "false", "null", "~":
		return true
	}
	return false
}
