package syntax

import (
	"strconv"
	"strings"
)

// formatter renders nodes back to source text. In compact mode it inserts
// only the parentheses needed to preserve the tree; in bracketed mode it
// wraps every operator application.
type formatter struct {
	strings.Builder
	brackets bool
}

func format(n Node, brackets bool) string {
	f := &formatter{brackets: brackets}
	f.node(n)
	return f.String()
}

func (f *formatter) node(n Node) {
	switch n := n.(type) {
	case Stmt:
		f.stmt(n)
	case Expr:
		f.expr(n)
	}
}

// ----------------------------------------------------------------------------
// Statements

func (f *formatter) stmt(s Stmt) {
	switch s := s.(type) {
	case *EmptyStmt:

	case *AssignStmt:
		if s.Global {
			f.WriteString("global ")
		}
		f.expr(s.Name)
		f.WriteByte('=')
		f.expr(s.Value)

	case *ReturnStmt:
		f.WriteString("return")
		if s.Value != nil {
			f.WriteByte(' ')
			f.expr(s.Value)
		}

	case *IfStmt:
		f.WriteString("if ")
		f.expr(s.Cond)
		f.WriteString(" then\n")
		f.block(s.Then)
		if s.Else != nil {
			f.WriteString("else\n")
			f.block(s.Else)
		}
		f.WriteString("endif")

	case *FuncStmt:
		open, end := "function ", "endfunction"
		if s.IsProcedure {
			open, end = "procedure ", "endprocedure"
		}
		f.WriteString(open)
		f.expr(s.Name)
		f.WriteByte('(')
		for i, p := range s.Params {
			if i > 0 {
				f.WriteString(", ")
			}
			f.expr(p)
		}
		f.WriteString(")\n")
		f.block(s.Body)
		f.WriteString(end)

	case *BlockStmt:
		f.block(s)

	case *ExprStmt:
		f.expr(s.X)
	}
}

// block writes each statement on its own line.
func (f *formatter) block(b *BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		f.stmt(s)
		f.WriteByte('\n')
	}
}

// ----------------------------------------------------------------------------
// Expressions

func (f *formatter) expr(x Expr) {
	switch x := x.(type) {
	case *Identifier:
		f.WriteString(x.Value)

	case *BoolLit:
		f.WriteString(strconv.FormatBool(x.Value))

	case *IntLit:
		f.WriteString(strconv.FormatInt(x.Value, 10))

	case *StringLit:
		q := byte('"')
		if strings.IndexByte(x.Value, '"') >= 0 {
			q = '\''
		}
		f.WriteByte(q)
		f.WriteString(x.Value)
		f.WriteByte(q)

	case *PrefixExpr:
		f.open()
		f.WriteString(x.Op.String())
		if x.Op == PrefixNot {
			f.WriteByte(' ')
		}
		_, infix := x.X.(*InfixExpr)
		f.operand(x.X, infix)
		f.close()

	case *InfixExpr:
		prec := x.Op.precedence()
		f.open()
		f.operand(x.X, exprPrecedence(x.X) < prec)
		if x.Op.isWord() {
			f.WriteByte(' ')
			f.WriteString(x.Op.String())
			f.WriteByte(' ')
		} else {
			f.WriteString(x.Op.String())
		}
		// Equal precedence on the right needs parentheses because chains
		// associate to the left.
		f.operand(x.Y, exprPrecedence(x.Y) <= prec)
		f.close()

	case *CallExpr:
		f.expr(x.Fun)
		f.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				f.WriteString(", ")
			}
			f.expr(a)
		}
		f.WriteByte(')')

	case *BadExpr:
		f.WriteString("<placeholder>")
	}
}

// operand writes x, parenthesised if paren is set and the formatter is in
// compact mode. Bracketed mode already wraps every operation.
func (f *formatter) operand(x Expr, paren bool) {
	if paren && !f.brackets {
		f.WriteByte('(')
		f.expr(x)
		f.WriteByte(')')
		return
	}
	f.expr(x)
}

func (f *formatter) open() {
	if f.brackets {
		f.WriteByte('(')
	}
}

func (f *formatter) close() {
	if f.brackets {
		f.WriteByte(')')
	}
}

// precedence returns the binding strength of op.
func (op InfixOp) precedence() precedence {
	switch op {
	case InfixEql, InfixNeq:
		return precEquality
	case InfixLss, InfixLeq, InfixGtr, InfixGeq:
		return precInequality
	case InfixAnd:
		return precAnd
	case InfixOr:
		return precOr
	case InfixAdd, InfixSub:
		return precSum
	}
	return precProduct
}

// exprPrecedence returns how tightly x binds as an operand. Only infix
// expressions can be split by a neighbouring operator.
func exprPrecedence(x Expr) precedence {
	if x, ok := x.(*InfixExpr); ok {
		return x.Op.precedence()
	}
	return precCall
}

// ----------------------------------------------------------------------------
// Node methods

func (x *Identifier) String() string { return format(x, false) }
func (x *BoolLit) String() string    { return format(x, false) }
func (x *IntLit) String() string     { return format(x, false) }
func (x *StringLit) String() string  { return format(x, false) }
func (x *PrefixExpr) String() string { return format(x, false) }
func (x *InfixExpr) String() string  { return format(x, false) }
func (x *CallExpr) String() string   { return format(x, false) }
func (x *BadExpr) String() string    { return format(x, false) }

func (x *Identifier) Bracketed() string { return format(x, true) }
func (x *BoolLit) Bracketed() string    { return format(x, true) }
func (x *IntLit) Bracketed() string     { return format(x, true) }
func (x *StringLit) Bracketed() string  { return format(x, true) }
func (x *PrefixExpr) Bracketed() string { return format(x, true) }
func (x *InfixExpr) Bracketed() string  { return format(x, true) }
func (x *CallExpr) Bracketed() string   { return format(x, true) }
func (x *BadExpr) Bracketed() string    { return format(x, true) }

func (s *EmptyStmt) String() string  { return format(s, false) }
func (s *AssignStmt) String() string { return format(s, false) }
func (s *ReturnStmt) String() string { return format(s, false) }
func (s *IfStmt) String() string     { return format(s, false) }
func (s *FuncStmt) String() string   { return format(s, false) }
func (s *BlockStmt) String() string  { return format(s, false) }
func (s *ExprStmt) String() string   { return format(s, false) }

func (s *EmptyStmt) Bracketed() string  { return format(s, true) }
func (s *AssignStmt) Bracketed() string { return format(s, true) }
func (s *ReturnStmt) Bracketed() string { return format(s, true) }
func (s *IfStmt) Bracketed() string     { return format(s, true) }
func (s *FuncStmt) Bracketed() string   { return format(s, true) }
func (s *BlockStmt) Bracketed() string  { return format(s, true) }
func (s *ExprStmt) Bracketed() string   { return format(s, true) }

// String renders the program with statements separated by newlines.
func (p *Program) String() string { return p.format(false) }

// Bracketed is like String with every operation parenthesised.
func (p *Program) Bracketed() string { return p.format(true) }

func (p *Program) format(brackets bool) string {
	f := &formatter{brackets: brackets}
	for i, s := range p.Stmts {
		if i > 0 {
			f.WriteByte('\n')
		}
		f.stmt(s)
	}
	return f.String()
}
