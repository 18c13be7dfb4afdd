package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arnavsurve/sprig/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// --- Program ---

// Program is the root of every parsed file. Statements keep source order.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String for Program concatenates the string representations of its statements
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statements ---

// BlockStatement -> { statement1 statement2 }
// The parser only builds one when a block holds zero or several statements;
// a single statement stands on its own.
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		out.WriteString("\t" + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// PrintStatement -> print("hello"); or print(x);
type PrintStatement struct {
	Token token.Token // print
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string {
	var out bytes.Buffer
	out.WriteString(ps.TokenLiteral() + "(")
	if ps.Value != nil {
		out.WriteString(ps.Value.String())
	}
	out.WriteString(");")
	return out.String()
}

// StringLiteral returns the argument text when the statement prints a
// string literal directly.
func (ps *PrintStatement) StringLiteral() (string, bool) {
	if sl, ok := ps.Value.(*StringLiteral); ok {
		return sl.Value, true
	}
	return "", false
}

// VarDeclStatement -> let x = 5;
type VarDeclStatement struct {
	Token token.Token // let
	Name  *Identifier
	Value Expression
}

func (vs *VarDeclStatement) statementNode()       {}
func (vs *VarDeclStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarDeclStatement) String() string {
	var out bytes.Buffer
	out.WriteString(vs.TokenLiteral() + " ")
	if vs.Name != nil {
		out.WriteString(vs.Name.String())
	}
	out.WriteString(" = ")
	if vs.Value != nil {
		out.WriteString(vs.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// IfStatement -> if (cond) { ... }
type IfStatement struct {
	Token     token.Token // if
	Condition Expression
	Body      Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	if is.Condition != nil {
		out.WriteString(is.Condition.String())
	}
	out.WriteString(") ")
	out.WriteString(bodyString(is.Body))
	return out.String()
}

// ForStatement -> for (init; cond; update) { ... } or for { ... }
// A nil Condition means the loop never ends on its own.
type ForStatement struct {
	Token     token.Token // for
	Init      Statement   // *VarDeclStatement, *ExpressionStatement or nil
	Condition Expression
	Update    Expression
	Body      Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }

// IsInfinite reports whether the loop has no condition.
func (fs *ForStatement) IsInfinite() bool { return fs.Condition == nil }

func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	if fs.Init != nil || fs.Condition != nil || fs.Update != nil {
		out.WriteString("(")
		if fs.Init != nil {
			// Init statements already carry their ';'
			out.WriteString(fs.Init.String())
		} else {
			out.WriteString(";")
		}
		out.WriteString(" ")
		if fs.Condition != nil {
			out.WriteString(fs.Condition.String())
		}
		out.WriteString("; ")
		if fs.Update != nil {
			out.WriteString(fs.Update.String())
		}
		out.WriteString(") ")
	}
	out.WriteString(bodyString(fs.Body))
	return out.String()
}

// ExpressionStatement wraps an expression to be used as a statement (e.g. x = 1;)
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

func bodyString(body Statement) string {
	if body == nil {
		return "{}"
	}
	if block, ok := body.(*BlockStatement); ok {
		return block.String()
	}
	return "{ " + body.String() + " }"
}

// --- Expressions ---

// Identifier -> varName
type Identifier struct {
	Token token.Token // IDENT
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }
func (i *Identifier) GetToken() token.Token { return i.Token }

// StringLiteral -> "hello"
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) String() string        { return `"` + sl.Value + `"` }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// IntegerLiteral -> 123, also true (1) and false (0)
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Literal }
func (il *IntegerLiteral) String() string        { return strconv.FormatInt(il.Value, 10) }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// BinaryExpression -> (left op right)
// Operator is '=' for assignments, otherwise the operator character.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator byte
	Right    Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Literal }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if be.Left != nil {
		out.WriteString(be.Left.String())
	}
	out.WriteString(fmt.Sprintf(" %c ", be.Operator))
	if be.Right != nil {
		out.WriteString(be.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

// PostfixExpression -> i++ or i--
// Operator is '+' or '-'.
type PostfixExpression struct {
	Token    token.Token // the first operator token
	Operand  Expression
	Operator byte
}

func (pe *PostfixExpression) expressionNode()       {}
func (pe *PostfixExpression) TokenLiteral() string  { return pe.Token.Literal }
func (pe *PostfixExpression) GetToken() token.Token { return pe.Token }
func (pe *PostfixExpression) String() string {
	operand := ""
	if pe.Operand != nil {
		operand = pe.Operand.String()
	}
	return operand + string([]byte{pe.Operator, pe.Operator})
}
