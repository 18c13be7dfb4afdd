package ast

// Walk visits node and its children in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *PrintStatement:
		Walk(n.Value, fn)
	case *VarDeclStatement:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Value, fn)
	case *IfStatement:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)
	case *ForStatement:
		Walk(n.Init, fn)
		Walk(n.Condition, fn)
		Walk(n.Update, fn)
		Walk(n.Body, fn)
	case *ExpressionStatement:
		Walk(n.Expression, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *PostfixExpression:
		Walk(n.Operand, fn)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}
