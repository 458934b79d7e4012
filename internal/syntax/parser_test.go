package syntax

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseProgram(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if prog == nil {
		t.Fatal("Parse returned nil program")
	}
	return prog
}

// parseExpr parses src as a single expression statement.
func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	es, ok := prog.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ExprStmt", prog.Stmts[0])
	}
	return es.X
}

func parseError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	prog, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", src)
	}
	if prog != nil {
		t.Errorf("Parse(%q) returned a program with its error", src)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not *SyntaxError", err)
	}
	return se
}

// ----------------------------------------------------------------------------
// Statements

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "\n", "\n\n\n", "// only a comment", "  \n// c\n  "} {
		prog := parseProgram(t, src)
		if len(prog.Stmts) != 0 {
			t.Errorf("Parse(%q) = %d statements, want 0", src, len(prog.Stmts))
		}
	}
}

func TestParseAssign(t *testing.T) {
	src := "a=1\nglobal bb=22\nccc=333"
	prog := parseProgram(t, src)
	if len(prog.Stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Stmts))
	}

	want := []struct {
		name   string
		global bool
		value  int64
	}{
		{"a", false, 1},
		{"bb", true, 22},
		{"ccc", false, 333},
	}
	for i, w := range want {
		as, ok := prog.Stmts[i].(*AssignStmt)
		if !ok {
			t.Fatalf("stmt[%d] is %T, want *AssignStmt", i, prog.Stmts[i])
		}
		if as.Kind() != AssignKind {
			t.Errorf("stmt[%d].Kind() = %s", i, as.Kind())
		}
		if as.Name.Value != w.name {
			t.Errorf("stmt[%d] name = %q, want %q", i, as.Name.Value, w.name)
		}
		if as.Global != w.global {
			t.Errorf("stmt[%d] global = %v, want %v", i, as.Global, w.global)
		}
		lit, ok := as.Value.(*IntLit)
		if !ok || lit.Value != w.value {
			t.Errorf("stmt[%d] value = %v, want %d", i, as.Value, w.value)
		}
	}

	if got := prog.String(); got != src {
		t.Errorf("round trip:\ngot:  %q\nwant: %q", got, src)
	}
}

func TestParseAssignToken(t *testing.T) {
	prog := parseProgram(t, "global x = 1\ny = 2")
	if tok := prog.Stmts[0].Token(); tok.Kind != _Global {
		t.Errorf("global assign token = %s, want global", tok)
	}
	if tok := prog.Stmts[1].Token(); tok.Kind != _Name || tok.Lit != "y" {
		t.Errorf("assign token = %s, want NAME(y)", tok)
	}
}

func TestParseReturn(t *testing.T) {
	tests := []struct {
		src  string
		want string // "" for bare return
	}{
		{"return", ""},
		{"return\n", ""},
		{"return x", "x"},
		{"return 1+2*3", "(1+(2*3))"},
		{"return f(x)", "f(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			rs, ok := prog.Stmts[0].(*ReturnStmt)
			if !ok {
				t.Fatalf("stmt is %T, want *ReturnStmt", prog.Stmts[0])
			}
			if tt.want == "" {
				if rs.Value != nil {
					t.Errorf("value = %s, want none", rs.Value)
				}
				return
			}
			if rs.Value == nil {
				t.Fatal("value is nil")
			}
			if got := rs.Value.Bracketed(); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIf(t *testing.T) {
	src := "if x > 1 then\ny = 1\nz = 2\nendif"
	prog := parseProgram(t, src)
	is, ok := prog.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("stmt is %T, want *IfStmt", prog.Stmts[0])
	}
	if got := is.Cond.Bracketed(); got != "(x>1)" {
		t.Errorf("cond = %q, want (x>1)", got)
	}
	if len(is.Then.Stmts) != 2 {
		t.Errorf("then has %d statements, want 2", len(is.Then.Stmts))
	}
	if is.Else != nil {
		t.Errorf("else = %v, want nil", is.Else)
	}
	if got := is.String(); got != "if x>1 then\ny=1\nz=2\nendif" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseIfElse(t *testing.T) {
	src := `if a == b AND c then
    x = 1
else
    x = 2
    return x
endif
`
	prog := parseProgram(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	is := prog.Stmts[0].(*IfStmt)
	if got := is.Cond.Bracketed(); got != "(a==(b AND c))" {
		t.Errorf("cond = %q", got)
	}
	if is.Else == nil {
		t.Fatal("else branch missing")
	}
	if len(is.Then.Stmts) != 1 || len(is.Else.Stmts) != 2 {
		t.Errorf("then/else sizes = %d/%d, want 1/2", len(is.Then.Stmts), len(is.Else.Stmts))
	}
	want := "if a==b AND c then\nx=1\nelse\nx=2\nreturn x\nendif"
	if got := prog.String(); got != want {
		t.Errorf("String():\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParseIfEmptyBlocks(t *testing.T) {
	prog := parseProgram(t, "if x then\nelse\nendif")
	is := prog.Stmts[0].(*IfStmt)
	if len(is.Then.Stmts) != 0 || is.Else == nil || len(is.Else.Stmts) != 0 {
		t.Errorf("got then=%d else=%v", len(is.Then.Stmts), is.Else)
	}
}

func TestParseNestedIf(t *testing.T) {
	src := "if a then\nif b then\nx=1\nelse\nx=2\nendif\nendif"
	prog := parseProgram(t, src)
	outer := prog.Stmts[0].(*IfStmt)
	if outer.Else != nil {
		t.Error("outer if has an else branch")
	}
	inner, ok := outer.Then.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("inner is %T, want *IfStmt", outer.Then.Stmts[0])
	}
	if inner.Else == nil {
		t.Error("inner if lost its else branch")
	}
	if got := prog.String(); got != src {
		t.Errorf("round trip:\ngot:  %q\nwant: %q", got, src)
	}
}

func TestParseFunction(t *testing.T) {
	src := "function my_func(arg1, arg2)\nx=1\nendfunction"
	prog := parseProgram(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	fs, ok := prog.Stmts[0].(*FuncStmt)
	if !ok {
		t.Fatalf("stmt is %T, want *FuncStmt", prog.Stmts[0])
	}
	if fs.IsProcedure {
		t.Error("IsProcedure = true")
	}
	if fs.Name.Value != "my_func" {
		t.Errorf("name = %q", fs.Name.Value)
	}
	if len(fs.Params) != 2 || fs.Params[0].Value != "arg1" || fs.Params[1].Value != "arg2" {
		t.Errorf("params = %v", fs.Params)
	}
	if len(fs.Body.Stmts) != 1 {
		t.Errorf("body has %d statements, want 1", len(fs.Body.Stmts))
	}
	if got := fs.String(); got != src {
		t.Errorf("String():\ngot:  %q\nwant: %q", got, src)
	}
}

func TestParseProcedure(t *testing.T) {
	src := "procedure greet()\nprint(\"hi\")\nreturn\nendprocedure"
	prog := parseProgram(t, src)
	fs := prog.Stmts[0].(*FuncStmt)
	if !fs.IsProcedure {
		t.Error("IsProcedure = false")
	}
	if len(fs.Params) != 0 {
		t.Errorf("params = %v, want none", fs.Params)
	}
	if got := fs.String(); got != src {
		t.Errorf("String():\ngot:  %q\nwant: %q", got, src)
	}
}

func TestParseFunctionTerminatorMismatch(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{"function f()\nx=1\nendprocedure", _Endprocedure},
		{"procedure f()\nx=1\nendfunction", _Endfunction},
		{"function f()\nx=1\nendif", _Endif},
		{"function f()\nx=1\n", _EOF},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := parseError(t, tt.src)
			if se.Code != UnexpectedToken {
				t.Errorf("code = %s, want unexpected token", se.Code)
			}
			if se.Tok.Kind != tt.want {
				t.Errorf("offending token = %s, want %s", se.Tok.Kind, tt.want)
			}
		})
	}
}

func TestParseExpressionStatement(t *testing.T) {
	prog := parseProgram(t, "print(x)\n5")
	if len(prog.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Stmts))
	}
	for i, s := range prog.Stmts {
		if s.Kind() != ExprStmtKind {
			t.Errorf("stmt[%d].Kind() = %s, want Expression", i, s.Kind())
		}
	}
	if tok := prog.Stmts[0].Token(); tok.Lit != "print" {
		t.Errorf("expression statement token = %s", tok)
	}
}

func TestParseProgramOrder(t *testing.T) {
	src := `// compute things
global total = 0

function add(a, b)
    return a + b
endfunction

procedure show(x)
    print(x)
endprocedure

total = add(1, 2)
show(total)
`
	prog := parseProgram(t, src)
	kinds := []StmtKind{AssignKind, FuncKind, FuncKind, AssignKind, ExprStmtKind}
	if len(prog.Stmts) != len(kinds) {
		t.Fatalf("got %d statements, want %d", len(prog.Stmts), len(kinds))
	}
	for i, k := range kinds {
		if prog.Stmts[i].Kind() != k {
			t.Errorf("stmt[%d].Kind() = %s, want %s", i, prog.Stmts[i].Kind(), k)
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"5+5*5", "(5+(5*5))"},
		{"5 MOD 5*5", "((5 MOD 5)*5)"},
		{"-a+b * NOT c", "((-a)+(b*(NOT c)))"},
		{"5 * (5 + 5)", "(5*(5+5))"},

		// Left associativity
		{"a - b - c", "((a-b)-c)"},
		{"a / b * c", "((a/b)*c)"},
		{"a DIV b MOD c", "((a DIV b) MOD c)"},
		{"a < b < c", "((a<b)<c)"},

		// And/Or sit between comparison and arithmetic
		{"a == b AND c", "(a==(b AND c))"},
		{"a AND b OR c", "(a AND (b OR c))"},
		{"a OR b AND c", "((a OR b) AND c)"},
		{"a OR b + c", "(a OR (b+c))"},
		{"a < b OR c", "(a<(b OR c))"},
		{"a == b < c", "(a==(b<c))"},
		{"a < b == c", "((a<b)==c)"},
		{"a != b >= c", "(a!=(b>=c))"},

		// Prefix binds tighter than any infix operator
		{"-a*b", "((-a)*b)"},
		{"NOT a == b", "((NOT a)==b)"},
		{"NOT NOT a", "(NOT (NOT a))"},
		{"--a", "(-(-a))"},
		{"+a", "(+a)"},
		{"-(a+b)", "(-(a+b))"},
		{"a*-b", "(a*(-b))"},

		// Grouping
		{"(a)", "a"},
		{"((1))", "1"},
		{"(a+b)*(c-d)", "((a+b)*(c-d))"},
		{"a-(b-c)", "(a-(b-c))"},

		// Calls bind tightest
		{"f(x)+1", "(f(x)+1)"},
		{"-f(x)", "(-f(x))"},
		{"f(a+b, g(c))", "f((a+b), g(c))"},
		{"f()", "f()"},

		// Literals
		{"true", "true"},
		{"false OR true", "(false OR true)"},
		{`"hi"`, `"hi"`},
		{"007", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			x := parseExpr(t, tt.src)
			if got := x.Bracketed(); got != tt.want {
				t.Errorf("Bracketed():\ngot:  %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestParseCall(t *testing.T) {
	prog := parseProgram(t, "y=my_function(1, x+3, y)")
	as, ok := prog.Stmts[0].(*AssignStmt)
	if !ok {
		t.Fatalf("stmt is %T, want *AssignStmt", prog.Stmts[0])
	}
	call, ok := as.Value.(*CallExpr)
	if !ok {
		t.Fatalf("value is %T, want *CallExpr", as.Value)
	}
	if call.Fun.Value != "my_function" {
		t.Errorf("callee = %q", call.Fun.Value)
	}
	if len(call.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(call.Args))
	}
	if call.Args[0].Kind() != IntKind || call.Args[2].Kind() != IdentKind {
		t.Errorf("arg kinds = %s, %s", call.Args[0].Kind(), call.Args[2].Kind())
	}
	sum, ok := call.Args[1].(*InfixExpr)
	if !ok || sum.Op != InfixAdd {
		t.Fatalf("arg[1] = %v, want Infix(+)", call.Args[1])
	}
	if _, ok := sum.X.(*Identifier); !ok {
		t.Errorf("arg[1].X is %T, want *Identifier", sum.X)
	}
	if lit, ok := sum.Y.(*IntLit); !ok || lit.Value != 3 {
		t.Errorf("arg[1].Y = %v, want 3", sum.Y)
	}
	if got := as.String(); got != "y=my_function(1, x+3, y)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseCallNewlines(t *testing.T) {
	tests := []string{
		"f(\n1,\n2\n)",
		"f(1\n, 2)",
		"f(\n\n)",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			x := parseExpr(t, src)
			if _, ok := x.(*CallExpr); !ok {
				t.Errorf("got %T, want *CallExpr", x)
			}
		})
	}
}

func TestParseExprNodes(t *testing.T) {
	x := parseExpr(t, "NOT done")
	pe, ok := x.(*PrefixExpr)
	if !ok || pe.Op != PrefixNot || pe.Kind() != PrefixKind {
		t.Fatalf("got %v, want NOT prefix", x)
	}
	if pe.Token().Kind != _Not {
		t.Errorf("prefix token = %s", pe.Token())
	}

	x = parseExpr(t, "a >= 10")
	ie := x.(*InfixExpr)
	if ie.Op != InfixGeq || ie.Token().Kind != _Geq {
		t.Errorf("infix op = %s token = %s", ie.Op, ie.Token())
	}

	b := parseExpr(t, "false").(*BoolLit)
	if b.Value || b.Kind() != BoolKind {
		t.Errorf("bool = %v", b)
	}

	s := parseExpr(t, "'x'").(*StringLit)
	if s.Value != "x" || s.Kind() != StringKind {
		t.Errorf("string = %v", s)
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code ErrorCode
		kind Kind // offending token
	}{
		{"missing_close_paren", "(1+2", UnexpectedToken, _EOF},
		{"wrong_close", "(1+2]", UnexpectedToken, _Rbrack},
		{"call_wrong_close", "f(1, 2]", UnexpectedToken, _Rbrack},
		{"call_trailing_comma", "f(1,)", UnexpectedToken, _Rparen},
		{"call_not_ident", "5(1)", UnexpectedToken, _Lparen},
		{"call_twice", "f(1)(2)", UnexpectedToken, _Lparen},
		{"call_grouped", "(f)(1)", UnexpectedToken, _Lparen},
		{"dangling_op", "1 +", UnexpectedToken, _EOF},
		{"illegal", "x = 1 ! 2", UnexpectedToken, _Illegal},
		{"two_exprs", "a b", UnexpectedToken, _Name},
		{"two_stmts_one_line", "a=1 b=2", UnexpectedToken, _Name},
		{"global_no_name", "global = 1", UnexpectedToken, _Assign},
		{"global_no_assign", "global x", UnexpectedToken, _EOF},
		{"assign_no_value", "x =", UnexpectedToken, _EOF},
		{"if_no_then", "if x\ny=1\nendif", UnexpectedToken, _Newline},
		{"if_then_same_line", "if x then y=1\nendif", UnexpectedToken, _Name},
		{"if_no_endif", "if x then\ny=1\n", UnexpectedToken, _EOF},
		{"if_else_no_endif", "if x then\ny=1\nelse\ny=2", UnexpectedToken, _EOF},
		{"if_wrong_ender", "if x then\ny=1\nendwhile", UnexpectedToken, _Endwhile},
		{"if_after_endif", "if x then\nendif y", UnexpectedToken, _Name},
		{"stray_endif", "endif", UnexpectedToken, _Endif},
		{"stray_else", "else", UnexpectedToken, _Else},
		{"func_no_name", "function (a)\nendfunction", UnexpectedToken, _Lparen},
		{"func_no_parens", "function f\nendfunction", UnexpectedToken, _Newline},
		{"func_bad_param", "function f(1)\nendfunction", UnexpectedToken, _Number},
		{"func_param_sep", "function f(a b)\nendfunction", UnexpectedToken, _Name},
		{"func_body_same_line", "function f() x=1\nendfunction", UnexpectedToken, _Name},
		{"switch_unsupported", "switch x", UnexpectedToken, _Switch},
		{"while_unsupported", "while x", UnexpectedToken, _While},
		{"caret_no_grammar", "a ^ b", UnexpectedToken, _Caret},
		{"too_large", "x = 9223372036854775808", IntegerTooLarge, _Number},
		{"unterminated", `x = "abc`, UnterminatedString, _String},
		{"unterminated_first_token", `"abc`, UnterminatedString, _String},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := parseError(t, tt.src)
			if se.Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", se.Code, tt.code, se)
			}
			if se.Tok.Kind != tt.kind {
				t.Errorf("offending token = %s, want %s (%v)", se.Tok.Kind, tt.kind, se)
			}
		})
	}
}

func TestParseErrorSentinels(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"x = )", ErrUnexpectedToken},
		{"x = 99999999999999999999", ErrTooLargeInteger},
		{"x = 'abc", ErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMaxInt(t *testing.T) {
	x := parseExpr(t, "9223372036854775807")
	if lit := x.(*IntLit); lit.Value != 9223372036854775807 {
		t.Errorf("value = %d", lit.Value)
	}
}

func TestParseErrorPositions(t *testing.T) {
	tests := []struct {
		src  string
		line uint32
		col  uint32
	}{
		{"x = )", 1, 5},
		{"a = 1\nb = (2", 2, 7},
		{"function f()\n  x = 1\nendprocedure", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := parseError(t, tt.src)
			if se.Pos.Line() != tt.line || se.Pos.Col() != tt.col {
				t.Errorf("error at %s, want %d:%d", se.Pos, tt.line, tt.col)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)

	p, err := NewParser(NewScanner(deep))
	if err != nil {
		t.Fatal(err)
	}
	p.SetMaxDepth(50)
	if _, err := p.Parse(); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("error = %v, want ErrNestingTooDeep", err)
	}

	// The default limit accepts the same input.
	if _, err := Parse(deep); err != nil {
		t.Errorf("default depth: %v", err)
	}
}

func TestParseMaxDepthBlocks(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("if x then\n")
	}
	for i := 0; i < 20; i++ {
		b.WriteString("endif\n")
	}

	p, err := NewParser(NewScanner(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	p.SetMaxDepth(10)
	if _, err := p.Parse(); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("error = %v, want ErrNestingTooDeep", err)
	}

	p, _ = NewParser(NewScanner(b.String()))
	p.SetMaxDepth(0) // restores the default
	if _, err := p.Parse(); err != nil {
		t.Errorf("default depth: %v", err)
	}
}

func TestParseAdversarialNesting(t *testing.T) {
	src := strings.Repeat("-", DefaultMaxDepth*4) + "1"
	if _, err := Parse(src); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("error = %v, want ErrNestingTooDeep", err)
	}
}

// ----------------------------------------------------------------------------
// Round trip

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"a=1\nglobal bb=22\nccc=333",
		"function my_func(arg1, arg2)\nx=1\nendfunction",
		"x=a-(b-c)",
		"x=(a+b)*c",
		"x=-(a+b)",
		"x=NOT (a==b)",
		"x=a==b AND c",
		"x=(a==b) AND c",
		"x=a AND (b AND c)",
		"x=f(1, g(2), 'it\"s')",
		"return",
		"if a<b then\nreturn a\nelse\nreturn b\nendif",
		"procedure p()\nendprocedure",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			prog := parseProgram(t, src)
			got := prog.String()
			if got != src {
				t.Fatalf("String():\ngot:  %q\nwant: %q", got, src)
			}
			again := parseProgram(t, got)
			if again.Bracketed() != prog.Bracketed() {
				t.Errorf("reparse changed the tree:\n%s\n%s", prog.Bracketed(), again.Bracketed())
			}
		})
	}
}

// Compact printing normalises spacing; re-parsing the output gives the
// same tree.
func TestParseCanonicalForm(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = 1 + 2", "x=1+2"},
		{"  global   y   =   a  MOD  b", "global y=a MOD b"},
		{"x = ((a))", "x=a"},
		{"x = (a * b) + c", "x=a*b+c"},
		{"f( 1 ,2 )", "f(1, 2)"},
		{"if x then // why\n\n  y = 1\n\nendif", "if x then\ny=1\nendif"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			if got := prog.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if parseProgram(t, tt.want).Bracketed() != prog.Bracketed() {
				t.Error("canonical form parses to a different tree")
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Golden tests

func TestParseGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.pseudo")
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			prog, err := Parse(string(src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			var buf bytes.Buffer
			Fprint(&buf, prog)
			got := buf.String()

			golden := strings.TrimSuffix(f, ".pseudo") + ".ast.golden"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				// If golden file doesn't exist, create it
				if os.IsNotExist(err) {
					if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
						t.Fatal(err)
					}
					t.Logf("created golden file: %s", golden)
					return
				}
				t.Fatal(err)
			}

			if got != string(want) {
				t.Errorf("AST mismatch for %s\nRun with UPDATE_GOLDEN=1 to update", f)
			}
		})
	}
}
