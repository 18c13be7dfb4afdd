package parser

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/sprig/internal/compiler/ast"
	"github.com/arnavsurve/sprig/internal/compiler/token"
)

// Parser is a recursive-descent parser over a materialized token sequence.
// pos is the only state that changes while parsing; a Parser must not be
// shared between goroutines.
type Parser struct {
	tokens   []token.Token
	pos      int
	warnings []string
}

// NewParser prepares a parser for tokens. A sequence that does not end in
// EOF (or is empty) gets one appended so the cursor always has a stop.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.TokenEOF {
		eof := token.Token{Type: token.TokenEOF, Line: 1, Column: 1}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line = last.Line
			eof.Column = last.Column + len(last.Literal)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &Parser{tokens: tokens}
}

// Parse is shorthand for NewParser(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser(tokens).ParseProgram()
}

// --- Token Handling ---

func (p *Parser) curTok() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekTok() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

// nextToken advances the cursor. It never moves past the EOF token.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// expect consumes the current token if it has the wanted type.
func (p *Parser) expect(tt token.TokenType, expected string) (token.Token, error) {
	tok := p.curTok()
	if tok.Type != tt {
		return tok, p.unexpected(expected)
	}
	p.nextToken()
	return tok, nil
}

// --- Error/Warning Handling ---

func (p *Parser) unexpected(expected string) error {
	return &ParseError{Expected: expected, Found: p.curTok(), Position: p.pos + 1}
}

func (p *Parser) addWarning(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, fmt.Sprintf("%d:%d: Warning: %s", tok.Line, tok.Column, msg))
}

// Warnings returns non-fatal notes collected while parsing.
func (p *Parser) Warnings() []string {
	return p.warnings
}

// --- Program Parsing ---

// ParseProgram parses statements until EOF. On the first failure it returns
// the error and no program; statements parsed before it are discarded.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Statements: []ast.Statement{}}

	for p.curTok().Type != token.TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok().Type {
	case token.TokenPrint:
		return p.parsePrintStatement()
	case token.TokenIf:
		return p.parseIfStatement()
	case token.TokenFor:
		return p.parseForStatement()
	case token.TokenLet:
		return p.parseVarDeclStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parsePrintStatement parses `print(<string> | <expression>);`
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.curTok()}
	p.nextToken() // Consume 'print'

	if _, err := p.expect(token.TokenLParen, "'('"); err != nil {
		return nil, err
	}

	switch p.curTok().Type {
	case token.TokenEOF:
		// print( at end of input: the call was never closed
		return nil, p.unexpected("')'")
	case token.TokenString:
		// String arguments are stored as-is, without going through expression parsing
		stmt.Value = &ast.StringLiteral{Token: p.curTok(), Value: p.curTok().Literal}
		p.nextToken()
	default:
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIfStatement parses `if (<expression>) { <statement>* }`
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.curTok()}
	p.nextToken() // Consume 'if'

	if _, err := p.expect(token.TokenLParen, "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt.Condition = cond
	stmt.Body = body
	return stmt, nil
}

// parseForStatement parses both `for { ... }` and
// `for ([init]; [condition]; [update]) { ... }`.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	stmt := &ast.ForStatement{Token: p.curTok()}
	p.nextToken() // Consume 'for'

	if p.curTok().Type == token.TokenLBrace {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Body = body
		return stmt, nil
	}

	if _, err := p.expect(token.TokenLParen, "'(' or '{'"); err != nil {
		return nil, err
	}

	// Init: empty, a let declaration, or an expression
	switch p.curTok().Type {
	case token.TokenSemicolon:
		p.nextToken()
	case token.TokenLet:
		init, err := p.parseVarDeclStatement() // consumes the ';'
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	default:
		startTok := p.curTok()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TokenSemicolon, "';'"); err != nil {
			return nil, err
		}
		stmt.Init = &ast.ExpressionStatement{Token: startTok, Expression: expr}
	}

	// Condition
	if p.curTok().Type == token.TokenSemicolon {
		p.addWarning(stmt.Token, "for loop has no condition and loops forever")
		p.nextToken()
	} else {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TokenSemicolon, "';'"); err != nil {
			return nil, err
		}
		stmt.Condition = cond
	}

	// Update
	if p.curTok().Type != token.TokenRParen {
		update, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parseVarDeclStatement parses `let <identifier> = <expression>;`
// Redeclaring a name is not checked here.
func (p *Parser) parseVarDeclStatement() (*ast.VarDeclStatement, error) {
	stmt := &ast.VarDeclStatement{Token: p.curTok()}
	p.nextToken() // Consume 'let'

	nameTok, err := p.expect(token.TokenIdent, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenAssign, "'='"); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	stmt.Name = &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	stmt.Value = value
	return stmt, nil
}

// parseExpressionStatement is the fallback: `<expression>;`
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	startTok := p.curTok()
	if !isExpressionStart(startTok) {
		return nil, p.unexpected("statement")
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}, nil
}

// parseBlock parses `{ <statement>* }`. A block with exactly one statement
// yields that statement; otherwise the statements are wrapped in a
// BlockStatement.
func (p *Parser) parseBlock() (ast.Statement, error) {
	openTok, err := p.expect(token.TokenLBrace, "'{'")
	if err != nil {
		return nil, err
	}

	stmts := []ast.Statement{}
	for p.curTok().Type != token.TokenRBrace && p.curTok().Type != token.TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ast.BlockStatement{Token: openTok, Statements: stmts}, nil
}

// --- Expression Parsing ---

func isExpressionStart(tok token.Token) bool {
	switch tok.Type {
	case token.TokenInt, token.TokenString, token.TokenBoolean, token.TokenIdent:
		return true
	}
	return false
}

// parseExpression parses an atom, or an identifier followed by a postfix
// ++/-- or a binary operator. The right-hand side of a binary operator is
// parsed as a whole expression, so chains associate to the right and no
// operator binds tighter than another.
func (p *Parser) parseExpression() (ast.Expression, error) {
	tok := p.curTok()

	switch tok.Type {
	case token.TokenInt:
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.unexpected("integer literal that fits in 64 bits")
		}
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: val}, nil

	case token.TokenString:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil

	case token.TokenBoolean:
		p.nextToken()
		var val int64
		if tok.Literal == "true" {
			val = 1
		}
		return &ast.IntegerLiteral{Token: tok, Value: val}, nil

	case token.TokenIdent:
		return p.parseIdentifierExpression()

	default:
		return nil, p.unexpected("expression")
	}
}

func (p *Parser) parseIdentifierExpression() (ast.Expression, error) {
	identTok := p.curTok()
	ident := &ast.Identifier{Token: identTok, Value: identTok.Literal}
	p.nextToken() // Consume identifier

	opTok := p.curTok()
	var op byte
	switch opTok.Type {
	case token.TokenOperator:
		op = opTok.Literal[0]
		next := p.peekTok()
		if (op == '+' || op == '-') && next.Type == token.TokenOperator && next.Literal == opTok.Literal {
			p.nextToken()
			p.nextToken()
			return &ast.PostfixExpression{Token: opTok, Operand: ident, Operator: op}, nil
		}
	case token.TokenAssign:
		op = '='
	default:
		return ident, nil
	}

	p.nextToken() // Consume operator
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Token: opTok, Left: ident, Operator: op, Right: right}, nil
}
