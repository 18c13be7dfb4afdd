package parser

import (
	"fmt"

	"github.com/arnavsurve/sprig/internal/compiler/token"
)

// ParseError is returned for every grammar mismatch: a missing delimiter, a
// keyword in the wrong place or a malformed expression. Parsing stops at the
// first one.
type ParseError struct {
	Expected string      // what the grammar wanted, e.g. "')'" or "expression"
	Found    token.Token // the token the cursor was on
	Position int         // 1-based index of Found in the token sequence
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: Syntax Error: Expected %s, got %s", e.Found.Line, e.Found.Column, e.Expected, e.Found.Describe())
}

func (e *ParseError) Line() int   { return e.Found.Line }
func (e *ParseError) Column() int { return e.Found.Column }
