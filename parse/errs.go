package parse

import (
	"fmt"

	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

type ErrorCode int

const (
	// DuplicateKey reports a key declared twice in one object.
	DuplicateKey ErrorCode = iota
	// Indentation reports a block object property indented deeper than
	// its siblings.
	Indentation
)

func (c ErrorCode) String() string {
	switch c {
	case DuplicateKey:
		return "DuplicateKey"
	case Indentation:
		return "Indentation"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseError is a diagnostic produced while parsing.  ParseErrors never
// abort a parse: they are recorded and parsing continues with a best
// effort result.
type ParseError struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
	Start   token.Pos `json:"start"`
	End     token.Pos `json:"end"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Start, e.Message, e.Code)
}

func duplicateKeyErr(key *ir.Node) ParseError {
	return ParseError{
		Message: fmt.Sprintf("duplicate key %q", key.String),
		Code:    DuplicateKey,
		Start:   key.Start,
		End:     key.End,
	}
}
