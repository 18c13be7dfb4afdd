package token

import "fmt"

type TokenType string

const (
	// Special
	TokenEOF TokenType = "EOF"

	// Literals & Identifiers
	TokenInt     TokenType = "INT"     // 43
	TokenString  TokenType = "STRING"  // "..."
	TokenBoolean TokenType = "BOOLEAN" // true, false
	TokenIdent   TokenType = "IDENT"   // Identifier (e.g. variable name)

	// Keywords
	TokenPrint    TokenType = "PRINT"    // print
	TokenIf       TokenType = "IF"       // if
	TokenElse     TokenType = "ELSE"     // else
	TokenFor      TokenType = "FOR"      // for
	TokenForeach  TokenType = "FOREACH"  // foreach
	TokenWhile    TokenType = "WHILE"    // while
	TokenLet      TokenType = "LET"      // let
	TokenMut      TokenType = "MUT"      // mut
	TokenConst    TokenType = "CONST"    // const
	TokenFunction TokenType = "FUNCTION" // function
	TokenReturn   TokenType = "RETURN"   // return

	// Operators. Every operator character is its own token; the parser
	// recognizes pairs such as ++ and -- where it needs them.
	TokenOperator TokenType = "OPERATOR" // + - * / < > ! & | ^ %
	TokenAssign   TokenType = "ASSIGN"   // =

	// Single character punctuation
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenLBracket  TokenType = "LBRACKET"  // [
	TokenRBracket  TokenType = "RBRACKET"  // ]
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenColon     TokenType = "COLON"     // :
	TokenComma     TokenType = "COMMA"     // ,
	TokenDot       TokenType = "DOT"       // .
	TokenQuestion  TokenType = "QUESTION"  // ?
	TokenBang      TokenType = "BANG"      // ! (never produced: '!' lexes as an operator first)
	TokenTilde     TokenType = "TILDE"     // ~
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Pos renders the token position as line:column.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// Describe renders the token for error messages, e.g. RPAREN (')') or EOF.
func (t Token) Describe() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s ('%s')", t.Type, t.Literal)
}

// IsKeyword reports whether the token is a reserved word other than a
// boolean literal.
func (t Token) IsKeyword() bool {
	tt, ok := keywords[t.Literal]
	return ok && tt == t.Type && tt != TokenBoolean
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]TokenType{
	"print":    TokenPrint,
	"if":       TokenIf,
	"else":     TokenElse,
	"for":      TokenFor,
	"foreach":  TokenForeach,
	"while":    TokenWhile,
	"let":      TokenLet,
	"mut":      TokenMut,
	"const":    TokenConst,
	"function": TokenFunction,
	"return":   TokenReturn,
	"true":     TokenBoolean,
	"false":    TokenBoolean,
}

// LookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or TokenIdent if it's not a keyword.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

// punctuation maps single punctuation characters to their token types.
var punctuation = map[rune]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	';': TokenSemicolon,
	':': TokenColon,
	',': TokenComma,
	'.': TokenDot,
	'?': TokenQuestion,
	'!': TokenBang,
	'~': TokenTilde,
}

// LookupPunctuation returns the token type for a punctuation character.
func LookupPunctuation(ch rune) (TokenType, bool) {
	tt, ok := punctuation[ch]
	return tt, ok
}

// IsOperatorChar reports whether ch belongs to the operator set.
func IsOperatorChar(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|', '^', '%':
		return true
	}
	return false
}
