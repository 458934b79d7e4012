package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
// node may be a *Program or any Node.
func FprintJSON(w io.Writer, node any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toTree(node))
}

// FprintYAML writes a YAML representation of the AST to w, with the same
// shape as FprintJSON.
func FprintYAML(w io.Writer, node any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toTree(node)); err != nil {
		return err
	}
	return enc.Close()
}

// toTree converts node into maps and slices that any encoder can handle.
func toTree(node any) interface{} {
	switch n := node.(type) {
	case nil:
		return nil

	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toTree(s) }),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":   AssignKind.String(),
			"pos":    n.Tok.Offs,
			"name":   n.Name.Value,
			"global": n.Global,
			"value":  toTree(n.Value),
		}

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": ReturnKind.String(),
			"pos":  n.Tok.Offs,
		}
		if n.Value != nil {
			m["value"] = toTree(n.Value)
		}
		return m

	case *IfStmt:
		m := map[string]interface{}{
			"type": IfKind.String(),
			"pos":  n.Tok.Offs,
			"cond": toTree(n.Cond),
			"then": toTree(n.Then),
		}
		if n.Else != nil {
			m["else"] = toTree(n.Else)
		}
		return m

	case *FuncStmt:
		return map[string]interface{}{
			"type":      FuncKind.String(),
			"pos":       n.Tok.Offs,
			"name":      n.Name.Value,
			"procedure": n.IsProcedure,
			"params":    mapSlice(n.Params, func(id *Identifier) interface{} { return id.Value }),
			"body":      toTree(n.Body),
		}

	case *BlockStmt:
		return map[string]interface{}{
			"type":  BlockKind.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toTree(s) }),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type":  ExprStmtKind.String(),
			"value": toTree(n.X),
		}

	case *EmptyStmt:
		return map[string]interface{}{"type": EmptyKind.String()}

	case *Identifier:
		return map[string]interface{}{
			"type":  IdentKind.String(),
			"pos":   n.Tok.Offs,
			"value": n.Value,
		}

	case *BoolLit:
		return map[string]interface{}{
			"type":  BoolKind.String(),
			"pos":   n.Tok.Offs,
			"value": n.Value,
		}

	case *IntLit:
		return map[string]interface{}{
			"type":  IntKind.String(),
			"pos":   n.Tok.Offs,
			"value": n.Value,
		}

	case *StringLit:
		return map[string]interface{}{
			"type":  StringKind.String(),
			"pos":   n.Tok.Offs,
			"value": n.Value,
		}

	case *PrefixExpr:
		return map[string]interface{}{
			"type": PrefixKind.String(),
			"pos":  n.Tok.Offs,
			"op":   n.Op.String(),
			"x":    toTree(n.X),
		}

	case *InfixExpr:
		return map[string]interface{}{
			"type": InfixKind.String(),
			"pos":  n.Tok.Offs,
			"op":   n.Op.String(),
			"x":    toTree(n.X),
			"y":    toTree(n.Y),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": CallKind.String(),
			"pos":  n.Tok.Offs,
			"fun":  n.Fun.Value,
			"args": mapSlice(n.Args, func(a Expr) interface{} { return toTree(a) }),
		}

	case *BadExpr:
		return map[string]interface{}{"type": BadKind.String()}
	}

	return nil
}

// mapSlice applies f to every element; the result is never nil so empty
// lists encode as [] rather than null.
func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
