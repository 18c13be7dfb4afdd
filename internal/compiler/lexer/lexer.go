package lexer

import (
	"unicode/utf8"

	"github.com/arnavsurve/sprig/internal/compiler/token"
)

type Lexer struct {
	input    string
	position int  // byte offset of ch
	width    int  // byte width of ch
	ch       rune // current char, 0 once the input is exhausted

	line   int // line of ch (1-indexed)
	column int // column of ch (1-indexed)

	diagnostics []Diagnostic
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.decode()
	return l
}

// Tokenize lexes input in one go. The returned slice always ends with
// exactly one EOF token. Unknown characters are skipped and not reported:
// callers that need them must use NewLexer, (*Lexer).Tokenize and then
// (*Lexer).Diagnostics.
func Tokenize(input string) ([]token.Token, error) {
	return NewLexer(input).Tokenize()
}

// Tokenize scans the whole input and returns the materialized token
// sequence. An unterminated string aborts the scan with a *LexError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	tokens := []token.Token{}
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.TokenEOF {
			return tokens, nil
		}
	}
}

// Diagnostics returns the recoverable problems found so far.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diagnostics
}

// readChar advances one character, keeping line/column pointed at the new
// current character. Columns count characters, not bytes. Reading past the
// end is a no-op.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}

	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.position += l.width
	l.decode()
}

// decode loads the character at position into ch. Invalid UTF-8 decodes as
// utf8.RuneError, one byte at a time.
func (l *Lexer) decode() {
	if l.atEOF() {
		l.ch, l.width = 0, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.position:])
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	next := l.position + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning EOF tokens positioned just past the last character.
func (l *Lexer) NextToken() (token.Token, error) {
	for {
		l.skipWhitespace()

		startLine := l.line
		startCol := l.column

		if l.atEOF() {
			return l.newToken(token.TokenEOF, "", startLine, startCol), nil
		}

		switch {
		case l.ch == '/' && l.peekChar() == '/':
			l.readComment()
			continue
		case isLetter(l.ch):
			ident := l.readIdentifier()
			return l.newToken(token.LookupIdent(ident), ident, startLine, startCol), nil
		case l.ch == '"':
			return l.readString(startLine, startCol)
		case isDigit(l.ch):
			return l.readInteger(startLine, startCol), nil
		case token.IsOperatorChar(l.ch):
			tokType := token.TokenOperator
			if l.ch == '=' {
				tokType = token.TokenAssign
			}
			tok := l.newToken(tokType, string(l.ch), startLine, startCol)
			l.readChar()
			return tok, nil
		}

		if tokType, ok := token.LookupPunctuation(l.ch); ok {
			tok := l.newToken(tokType, string(l.ch), startLine, startCol)
			l.readChar()
			return tok, nil
		}

		l.diagnostics = append(l.diagnostics, Diagnostic{Char: l.ch, Line: startLine, Column: startCol})
		l.readChar()
	}
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && isSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a double-quoted literal. Escape sequences are kept
// verbatim; a backslash only stops the following quote from closing the
// literal.
func (l *Lexer) readString(startLine, startCol int) (token.Token, error) {
	l.readChar() // Consume opening "
	start := l.position

	for !l.atEOF() && l.ch != '"' {
		if l.ch == '\\' {
			l.readChar()
			if l.atEOF() {
				break
			}
		}
		l.readChar()
	}

	if l.atEOF() {
		return token.Token{}, &LexError{Kind: UnterminatedString, Line: startLine, Column: startCol}
	}

	lit := l.input[start:l.position]
	l.readChar() // Consume closing "
	return l.newToken(token.TokenString, lit, startLine, startCol), nil
}

func (l *Lexer) readInteger(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.newToken(token.TokenInt, l.input[start:l.position], startLine, startCol)
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
