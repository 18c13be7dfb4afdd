package ast

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// PrintTree writes an indented rendering of node to w, one line per node.
// It never modifies the tree.
func PrintTree(w io.Writer, node Node) {
	printNode(w, node, "")
}

// Sprint returns the PrintTree rendering as a string.
func Sprint(node Node) string {
	var sb strings.Builder
	PrintTree(&sb, node)
	return sb.String()
}

func printNode(w io.Writer, node Node, indent string) {
	child := indent + indentUnit

	switch n := node.(type) {
	case nil:
		fmt.Fprintln(w, indent+"<nil>")

	case *Program:
		fmt.Fprintln(w, indent+"PROGRAM")
		for _, stmt := range n.Statements {
			printNode(w, stmt, child)
		}

	case *BlockStatement:
		fmt.Fprintln(w, indent+"BLOCK")
		for _, stmt := range n.Statements {
			printNode(w, stmt, child)
		}

	case *PrintStatement:
		fmt.Fprintln(w, indent+"PRINT")
		printOptional(w, "", n.Value, child)

	case *VarDeclStatement:
		name := ""
		if n.Name != nil {
			name = n.Name.Value
		}
		fmt.Fprintf(w, "%sVAR_DECL(%s)\n", indent, name)
		printNode(w, n.Value, child)

	case *IfStatement:
		fmt.Fprintln(w, indent+"IF")
		printOptional(w, "Condition:", n.Condition, child)
		printOptional(w, "Body:", n.Body, child)

	case *ForStatement:
		fmt.Fprintln(w, indent+"FOR_LOOP")
		printOptional(w, "Init:", n.Init, child)
		printOptional(w, "Condition:", n.Condition, child)
		printOptional(w, "Update:", n.Update, child)
		printOptional(w, "Body:", n.Body, child)

	case *ExpressionStatement:
		fmt.Fprintln(w, indent+"EXPR_STMT")
		printNode(w, n.Expression, child)

	case *Identifier:
		fmt.Fprintf(w, "%sIDENTIFIER(%s)\n", indent, n.Value)

	case *StringLiteral:
		fmt.Fprintf(w, "%sSTRING_LITERAL(\"%s\")\n", indent, n.Value)

	case *IntegerLiteral:
		fmt.Fprintf(w, "%sINT_LITERAL(%d)\n", indent, n.Value)

	case *BinaryExpression:
		fmt.Fprintf(w, "%sBINARY_OP(%c)\n", indent, n.Operator)
		printNode(w, n.Left, child)
		printNode(w, n.Right, child)

	case *PostfixExpression:
		fmt.Fprintf(w, "%sUNARY_OP(%c%c)\n", indent, n.Operator, n.Operator)
		printNode(w, n.Operand, child)

	default:
		fmt.Fprintf(w, "%s<unknown node type: %T>\n", indent, n)
	}
}

// printOptional prints a labelled child, or "<none>" when it is absent.
// An empty label prints the child in place.
func printOptional(w io.Writer, label string, node Node, indent string) {
	if node == nil {
		if label == "" {
			fmt.Fprintln(w, indent+"<none>")
		} else {
			fmt.Fprintln(w, indent+label+" <none>")
		}
		return
	}
	if label == "" {
		printNode(w, node, indent)
		return
	}
	fmt.Fprintln(w, indent+label)
	printNode(w, node, indent+indentUnit)
}
