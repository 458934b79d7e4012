package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree representation of the AST to w.
// node may be a *Program or any Node.
func Fprint(w io.Writer, node any) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// nested prints label and then n one level deeper.
func (p *printer) nested(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node any) {
	switch n := node.(type) {
	case nil:
		return

	case *Program:
		p.printf("Program\n")
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *AssignStmt:
		p.printf("Assign %s global=%t\n", n.Name.Value, n.Global)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *ReturnStmt:
		p.printf("Return\n")
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *IfStmt:
		p.printf("If\n")
		p.indent++
		p.nested("Cond", n.Cond)
		p.nested("Then", n.Then)
		if n.Else != nil {
			p.nested("Else", n.Else)
		}
		p.indent--

	case *FuncStmt:
		kind := "Function"
		if n.IsProcedure {
			kind = "Procedure"
		}
		p.printf("%s %s\n", kind, n.Name.Value)
		p.indent++
		if len(n.Params) > 0 {
			names := make([]string, len(n.Params))
			for i, id := range n.Params {
				names[i] = id.Value
			}
			p.printf("Params: %s\n", strings.Join(names, ", "))
		}
		p.nested("Body", n.Body)
		p.indent--

	case *BlockStmt:
		p.printf("Block\n")
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ExprStmt:
		p.printf("Expression\n")
		p.indent++
		p.print(n.X)
		p.indent--

	case *EmptyStmt:
		p.printf("Empty\n")

	case *Identifier:
		p.printf("Identifier %q\n", n.Value)

	case *BoolLit:
		p.printf("Boolean %t\n", n.Value)

	case *IntLit:
		p.printf("IntegerLiteral %d\n", n.Value)

	case *StringLit:
		p.printf("StringLiteral %q\n", n.Value)

	case *PrefixExpr:
		p.printf("Prefix %s\n", n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *InfixExpr:
		p.printf("Infix %s\n", n.Op)
		p.indent++
		p.nested("X", n.X)
		p.nested("Y", n.Y)
		p.indent--

	case *CallExpr:
		p.printf("FunctionCall %s\n", n.Fun.Value)
		if len(n.Args) > 0 {
			p.indent++
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent -= 2
		}

	case *BadExpr:
		p.printf("Placeholder\n")

	default:
		p.printf("<%T>\n", node)
	}
}
