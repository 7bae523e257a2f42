package compiler

import (
	"fmt"

	"github.com/vasyharan/dravid/internal/token"
)

// Kind classifies a compiler Error.
type Kind int

const (
	// Syntax covers unexpected tokens, missing delimiters, unparseable
	// expressions, and keyword-context mismatches.
	Syntax Kind = iota
	// Invalid covers lexer-produced invalid bytes and unimplemented
	// constructs the generator refuses to lower.
	Invalid
)

func (k Kind) String() string {
	if k == Syntax {
		return "SYN"
	}
	return "INVALID"
}

// Error is a single diagnostic accumulated on a Context. Errors are
// never thrown; producing stages record them here and return a
// null/zero value from the failing production.
type Error struct {
	Kind        Kind
	Message     string
	Explanation string
}

// String renders the error in the snapshot-collaborator textual form:
// "KIND: MESSAGE\nEXPLANATION".
func (e *Error) String() string {
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, e.Explanation)
}

// UnexpectedToken builds a Syntax error describing an unexpected token,
// optionally with an explanation of what was expected.
func UnexpectedToken(tok token.Token, explanation string) *Error {
	return &Error{
		Kind:        Syntax,
		Message:     "Unexpected " + tok.String(),
		Explanation: explanation,
	}
}

// Unknown builds an Invalid error for a non-syntax failure (lexer garbage,
// unimplemented lowering, semantic error raised by the generator).
func Unknown(message, explanation string) *Error {
	return &Error{Kind: Invalid, Message: message, Explanation: explanation}
}
