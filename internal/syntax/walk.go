package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, children in source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *AssignStmt:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *FuncStmt:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *PrefixExpr:
		Walk(n.X, v)

	case *InfixExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	// Leaf nodes: Identifier, BoolLit, IntLit, StringLit, BadExpr, EmptyStmt
	// No children to visit
	}
}

// Inspect traverses every statement of prog and calls f for each node.
func Inspect(prog *Program, f func(Node) bool) {
	for _, s := range prog.Stmts {
		Walk(s, Visitor(f))
	}
}
