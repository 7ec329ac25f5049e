package encode

import (
	"fmt"
	"strings"

	"github.com/signadot/lax/token"
)

// plainOK reports whether s reads back as the same string when written
// without quotes.
func plainOK(s string, flow bool) bool {
	if token.IsKeyword(s) || token.IsNumber(s) {
		return false
	}
	return syntaxOK(s, flow)
}

// syntaxOK reports whether s can be written without quotes and read back
// unchanged, ignoring scalar classification.
func syntaxOK(s string, flow bool) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	switch s[0] {
	case '"', '\'', '[', '{', '-':
		return false
	}
	if strings.ContainsAny(s, "#\r\n") {
		return false
	}
	// any ':' may be read as a key colon
	if strings.Contains(s, ":") {
		return false
	}
	if flow && strings.ContainsAny(s, ",]}") {
		return false
	}
	return true
}

// quote writes s between quotes.  There is no escaping, so s must not
// contain the quote character used.
func quote(s string) (string, error) {
	if strings.ContainsAny(s, "\r\n") {
		return "", fmt.Errorf("%w: line break in string %q", ErrEncoding, s)
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`, nil
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'", nil
	}
	return "", fmt.Errorf("%w: string %q holds both quote characters", ErrEncoding, s)
}

func scalarString(s string, flow bool) (v string, quoted bool, err error) {
	if plainOK(s, flow) {
		return s, false, nil
	}
	v, err = quote(s)
	return v, true, err
}

// keys are never classified, so only syntax matters.
func keyString(s string, flow bool) (string, error) {
	if syntaxOK(s, flow) {
		return s, nil
	}
	return quote(s)
}
