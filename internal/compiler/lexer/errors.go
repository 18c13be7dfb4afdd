package lexer

import "fmt"

type LexErrorKind int

const (
	// UnterminatedString: end of input reached before the closing quote.
	UnterminatedString LexErrorKind = iota + 1
)

func (k LexErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated string literal"
	default:
		return "unknown lex error"
	}
}

// LexError is a fatal lexing failure. Line and Column point at the start of
// the offending construct (the opening quote for unterminated strings).
type LexError struct {
	Kind   LexErrorKind
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: Syntax Error: %s", e.Line, e.Column, e.Kind)
}

// Diagnostic reports a character the lexer skipped. Scanning continues past
// it, so a Diagnostic never aborts lexing.
type Diagnostic struct {
	Char   rune
	Line   int
	Column int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: Lexical Warning: Unknown character '%c'", d.Line, d.Column, d.Char)
}
