package lexer

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/sprig/internal/compiler/token"
)

type expectedToken struct {
	Type    token.TokenType
	Literal string
	Line    int
	Column  int
}

func checkTokens(t *testing.T, input string, want []expectedToken) {
	t.Helper()
	toks, err := Tokenize(input)
	require.NoError(t, err)

	if len(toks) != len(want) {
		t.Fatalf("token count wrong for %q. expected=%d, got=%d (%v)", input, len(want), len(toks), toks)
	}
	for i, tt := range want {
		tok := toks[i]
		if tok.Type != tt.Type {
			t.Fatalf("tests[%d] - type wrong. expected=%q, got=%q", i, tt.Type, tok.Type)
		}
		if tok.Literal != tt.Literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.Literal, tok.Literal)
		}
		if tok.Line != tt.Line || tok.Column != tt.Column {
			t.Fatalf("tests[%d] - position wrong. expected=%d:%d, got=%s", i, tt.Line, tt.Column, tok.Pos())
		}
	}
}

func TestPrintStatement(t *testing.T) {
	checkTokens(t, `print("hi");`, []expectedToken{
		{token.TokenPrint, "print", 1, 1},
		{token.TokenLParen, "(", 1, 6},
		{token.TokenString, "hi", 1, 7},
		{token.TokenRParen, ")", 1, 11},
		{token.TokenSemicolon, ";", 1, 12},
		{token.TokenEOF, "", 1, 13},
	})
}

func TestMultiLinePositions(t *testing.T) {
	input := "let x = 5;\n  x = x + 1;\n"
	checkTokens(t, input, []expectedToken{
		{token.TokenLet, "let", 1, 1},
		{token.TokenIdent, "x", 1, 5},
		{token.TokenAssign, "=", 1, 7},
		{token.TokenInt, "5", 1, 9},
		{token.TokenSemicolon, ";", 1, 10},
		{token.TokenIdent, "x", 2, 3},
		{token.TokenAssign, "=", 2, 5},
		{token.TokenIdent, "x", 2, 7},
		{token.TokenOperator, "+", 2, 9},
		{token.TokenInt, "1", 2, 11},
		{token.TokenSemicolon, ";", 2, 12},
		{token.TokenEOF, "", 3, 1},
	})
}

func TestEmptyInput(t *testing.T) {
	checkTokens(t, "", []expectedToken{
		{token.TokenEOF, "", 1, 1},
	})
	checkTokens(t, "  \t\n", []expectedToken{
		{token.TokenEOF, "", 2, 1},
	})
}

func TestExactlyOneEOF(t *testing.T) {
	inputs := []string{"", "x", "// only a comment", "print(\"a\");\n\n", "@@@"}
	for _, input := range inputs {
		toks, err := Tokenize(input)
		require.NoError(t, err, input)

		eofs := 0
		for _, tok := range toks {
			if tok.Type == token.TokenEOF {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, "input %q", input)
		assert.Equal(t, token.TokenEOF, toks[len(toks)-1].Type, "input %q", input)
	}
}

func TestKeywordsAndBooleans(t *testing.T) {
	input := "if else for foreach while let mut const function return true false print printer"
	toks, err := Tokenize(input)
	require.NoError(t, err)

	want := []token.TokenType{
		token.TokenIf, token.TokenElse, token.TokenFor, token.TokenForeach,
		token.TokenWhile, token.TokenLet, token.TokenMut, token.TokenConst,
		token.TokenFunction, token.TokenReturn, token.TokenBoolean, token.TokenBoolean,
		token.TokenPrint, token.TokenIdent, token.TokenEOF,
	}
	require.Len(t, toks, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, toks[i].Type, "token %d (%q)", i, toks[i].Literal)
	}
	assert.True(t, toks[0].IsKeyword())
	assert.False(t, toks[10].IsKeyword(), "booleans are literals")
	assert.False(t, toks[13].IsKeyword())
}

func TestOperatorsAreSingleCharacters(t *testing.T) {
	toks, err := Tokenize("i++ == !x")
	require.NoError(t, err)

	got := []string{}
	for _, tok := range toks {
		got = append(got, string(tok.Type)+":"+tok.Literal)
	}
	assert.Equal(t, []string{
		"IDENT:i", "OPERATOR:+", "OPERATOR:+",
		"ASSIGN:=", "ASSIGN:=",
		"OPERATOR:!", "IDENT:x",
		"EOF:",
	}, got)
}

func TestPunctuation(t *testing.T) {
	toks, err := Tokenize("(){}[];:,.?~")
	require.NoError(t, err)

	want := []token.TokenType{
		token.TokenLParen, token.TokenRParen, token.TokenLBrace, token.TokenRBrace,
		token.TokenLBracket, token.TokenRBracket, token.TokenSemicolon, token.TokenColon,
		token.TokenComma, token.TokenDot, token.TokenQuestion, token.TokenTilde,
		token.TokenEOF,
	}
	require.Len(t, toks, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, toks[i].Type)
		assert.Equal(t, i+1, toks[i].Column)
	}
}

func TestComments(t *testing.T) {
	checkTokens(t, "x // trailing words ; \"\ny", []expectedToken{
		{token.TokenIdent, "x", 1, 1},
		{token.TokenIdent, "y", 2, 1},
		{token.TokenEOF, "", 2, 2},
	})
	// a single slash is still an operator
	checkTokens(t, "a / b", []expectedToken{
		{token.TokenIdent, "a", 1, 1},
		{token.TokenOperator, "/", 1, 3},
		{token.TokenIdent, "b", 1, 5},
		{token.TokenEOF, "", 1, 6},
	})
}

func TestStringEscapesKeptVerbatim(t *testing.T) {
	toks, err := Tokenize(`"a\"b\n"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.TokenString, toks[0].Type)
	assert.Equal(t, `a\"b\n`, toks[0].Literal)
}

func TestStringSpansLines(t *testing.T) {
	checkTokens(t, "\"a\nb\" x", []expectedToken{
		{token.TokenString, "a\nb", 1, 1},
		{token.TokenIdent, "x", 2, 4},
		{token.TokenEOF, "", 2, 5},
	})
}

func TestUnterminatedString(t *testing.T) {
	tests := []struct {
		input        string
		line, column int
	}{
		{`print("hi`, 1, 7},
		{"x;\n  \"abc", 2, 3},
		{`"ends in escape\`, 1, 1},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		assert.Nil(t, toks)

		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("input %q: expected *LexError, got=%T (%v)", tt.input, err, err)
		}
		assert.Equal(t, UnterminatedString, lexErr.Kind)
		assert.Equal(t, tt.line, lexErr.Line, tt.input)
		assert.Equal(t, tt.column, lexErr.Column, tt.input)
		assert.Contains(t, lexErr.Error(), "Syntax Error: unterminated string literal")
	}
}

func TestUnknownCharactersAreSkipped(t *testing.T) {
	l := NewLexer("let @x = 1 $;")
	toks, err := l.Tokenize()
	require.NoError(t, err)

	types := []token.TokenType{}
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.TokenType{
		token.TokenLet, token.TokenIdent, token.TokenAssign, token.TokenInt,
		token.TokenSemicolon, token.TokenEOF,
	}, types)

	diags := l.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, Diagnostic{Char: '@', Line: 1, Column: 5}, diags[0])
	assert.Equal(t, Diagnostic{Char: '$', Line: 1, Column: 12}, diags[1])
	assert.Equal(t, "1:5: Lexical Warning: Unknown character '@'", diags[0].String())
}

func TestNonASCIIInput(t *testing.T) {
	input := "let é = 1;\nprint(\"héllo\"); x;"
	want := []expectedToken{
		{token.TokenLet, "let", 1, 1},
		{token.TokenAssign, "=", 1, 7},
		{token.TokenInt, "1", 1, 9},
		{token.TokenSemicolon, ";", 1, 10},
		{token.TokenPrint, "print", 2, 1},
		{token.TokenLParen, "(", 2, 6},
		{token.TokenString, "héllo", 2, 7},
		{token.TokenRParen, ")", 2, 14},
		{token.TokenSemicolon, ";", 2, 15},
		{token.TokenIdent, "x", 2, 17},
		{token.TokenSemicolon, ";", 2, 18},
		{token.TokenEOF, "", 2, 19},
	}
	checkTokens(t, input, want)

	l := NewLexer(input)
	_, err := l.Tokenize()
	require.NoError(t, err)

	diags := l.Diagnostics()
	require.Len(t, diags, 1, "one diagnostic per character, not per byte")
	assert.Equal(t, Diagnostic{Char: 'é', Line: 1, Column: 5}, diags[0])
	assert.Equal(t, "1:5: Lexical Warning: Unknown character 'é'", diags[0].String())
}

func TestInvalidUTF8IsReportedPerByte(t *testing.T) {
	l := NewLexer("\xff\xfe;")
	toks, err := l.Tokenize()
	require.NoError(t, err)

	require.Len(t, toks, 2)
	assert.Equal(t, "1:3", toks[0].Pos())

	diags := l.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, utf8.RuneError, diags[0].Char)
	assert.Equal(t, 2, diags[1].Column)
}

func TestPackageTokenizeDropsDiagnostics(t *testing.T) {
	toks, err := Tokenize("a @ b")
	require.NoError(t, err)

	l := NewLexer("a @ b")
	lexed, err := l.Tokenize()
	require.NoError(t, err)

	assert.Equal(t, lexed, toks)
	assert.Len(t, l.Diagnostics(), 1)
}

func TestNextTokenAfterEOF(t *testing.T) {
	l := NewLexer("a")
	for i := 0; i < 3; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.TokenEOF, tok.Type)
	assert.Equal(t, "1:2", tok.Pos())
}
