package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Statements and Expressions. Both sets are
// closed: the marker methods restrict implementations to this package, and
// Kind gives callers an explicit tag to switch on.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Token() Token      // token that introduced the node
	String() string    // compact canonical source form
	Bracketed() string // like String, with every operator application parenthesised
	aNode()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	Kind() StmtKind
	aStmt()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	Kind() ExprKind
	aExpr()
}

// StmtKind tags the concrete type of a Stmt.
type StmtKind uint8

const (
	EmptyKind StmtKind = iota
	AssignKind
	ReturnKind
	IfKind
	FuncKind
	BlockKind
	ExprStmtKind
)

var stmtKindNames = [...]string{
	EmptyKind:    "Empty",
	AssignKind:   "Assign",
	ReturnKind:   "Return",
	IfKind:       "If",
	FuncKind:     "Function",
	BlockKind:    "Block",
	ExprStmtKind: "Expression",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

// ExprKind tags the concrete type of an Expr.
type ExprKind uint8

const (
	BadKind ExprKind = iota
	IdentKind
	BoolKind
	IntKind
	StringKind
	PrefixKind
	InfixKind
	CallKind
)

var exprKindNames = [...]string{
	BadKind:    "Placeholder",
	IdentKind:  "Identifier",
	BoolKind:   "Boolean",
	IntKind:    "IntegerLiteral",
	StringKind: "StringLiteral",
	PrefixKind: "Prefix",
	InfixKind:  "Infix",
	CallKind:   "FunctionCall",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// ----------------------------------------------------------------------------
// Operators

// PrefixOp is a unary operator.
type PrefixOp uint8

const (
	PrefixPlus  PrefixOp = iota // +
	PrefixMinus                 // -
	PrefixNot                   // NOT
)

var prefixOpNames = [...]string{
	PrefixPlus:  "+",
	PrefixMinus: "-",
	PrefixNot:   "NOT",
}

func (op PrefixOp) String() string { return prefixOpNames[op] }

// InfixOp is a binary operator.
type InfixOp uint8

const (
	InfixAdd    InfixOp = iota // +
	InfixSub                   // -
	InfixMul                   // *
	InfixQuo                   // /
	InfixIntDiv                // DIV
	InfixMod                   // MOD
	InfixEql                   // ==
	InfixNeq                   // !=
	InfixLss                   // <
	InfixLeq                   // <=
	InfixGtr                   // >
	InfixGeq                   // >=
	InfixAnd                   // AND
	InfixOr                    // OR
)

var infixOpNames = [...]string{
	InfixAdd:    "+",
	InfixSub:    "-",
	InfixMul:    "*",
	InfixQuo:    "/",
	InfixIntDiv: "DIV",
	InfixMod:    "MOD",
	InfixEql:    "==",
	InfixNeq:    "!=",
	InfixLss:    "<",
	InfixLeq:    "<=",
	InfixGtr:    ">",
	InfixGeq:    ">=",
	InfixAnd:    "AND",
	InfixOr:     "OR",
}

func (op InfixOp) String() string { return infixOpNames[op] }

// isWord reports whether op is spelled as a keyword and so needs spaces.
func (op InfixOp) isWord() bool {
	switch op {
	case InfixIntDiv, InfixMod, InfixAnd, InfixOr:
		return true
	}
	return false
}

var prefixOps = map[Kind]PrefixOp{
	_Add: PrefixPlus,
	_Sub: PrefixMinus,
	_Not: PrefixNot,
}

var infixOps = map[Kind]InfixOp{
	_Add:    InfixAdd,
	_Sub:    InfixSub,
	_Mul:    InfixMul,
	_Div:    InfixQuo,
	_IntDiv: InfixIntDiv,
	_Mod:    InfixMod,
	_Eql:    InfixEql,
	_Neq:    InfixNeq,
	_Lss:    InfixLss,
	_Leq:    InfixLeq,
	_Gtr:    InfixGtr,
	_Geq:    InfixGeq,
	_And:    InfixAnd,
	_Or:     InfixOr,
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	Tok Token
}

func (n *node) Token() Token { return n.Tok }
func (n *node) aNode()       {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program

// Program is the ordered list of top-level statements of a source unit.
type Program struct {
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Expressions

// Identifier is a name reference.
type Identifier struct {
	expr
	Value string // view of the source
}

// BoolLit is true or false.
type BoolLit struct {
	expr
	Value bool
}

// IntLit is a decimal integer literal.
type IntLit struct {
	expr
	Value int64
}

// StringLit is a quoted literal. Value excludes the quotes.
type StringLit struct {
	expr
	Value string
}

// PrefixExpr is a unary operation: Op X.
type PrefixExpr struct {
	expr
	Op PrefixOp
	X  Expr
}

// InfixExpr is a binary operation: X Op Y.
type InfixExpr struct {
	expr
	Op InfixOp
	X  Expr
	Y  Expr
}

// CallExpr is a call of a named function: Fun(Args...).
type CallExpr struct {
	expr
	Fun  *Identifier
	Args []Expr
}

// BadExpr stands in for an expression that was not parsed. The parser
// never produces one.
type BadExpr struct {
	expr
}

func (*Identifier) Kind() ExprKind { return IdentKind }
func (*BoolLit) Kind() ExprKind    { return BoolKind }
func (*IntLit) Kind() ExprKind     { return IntKind }
func (*StringLit) Kind() ExprKind  { return StringKind }
func (*PrefixExpr) Kind() ExprKind { return PrefixKind }
func (*InfixExpr) Kind() ExprKind  { return InfixKind }
func (*CallExpr) Kind() ExprKind   { return CallKind }
func (*BadExpr) Kind() ExprKind    { return BadKind }

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt is a statement with no content.
type EmptyStmt struct {
	stmt
}

// AssignStmt is [global] Name = Value. Tok is the global keyword when
// Global is set, otherwise the name.
type AssignStmt struct {
	stmt
	Name   *Identifier
	Global bool
	Value  Expr
}

// ReturnStmt is return [Value].
type ReturnStmt struct {
	stmt
	Value Expr // nil for a bare return
}

// IfStmt is if Cond then Then [else Else] endif.
type IfStmt struct {
	stmt
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // nil if there is no else branch
}

// FuncStmt is a function or procedure declaration.
type FuncStmt struct {
	stmt
	Name        *Identifier
	Params      []*Identifier
	Body        *BlockStmt
	IsProcedure bool
}

// BlockStmt is a statement list ended by a block ender keyword, which is
// not part of the block.
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	stmt
	X Expr
}

func (*EmptyStmt) Kind() StmtKind  { return EmptyKind }
func (*AssignStmt) Kind() StmtKind { return AssignKind }
func (*ReturnStmt) Kind() StmtKind { return ReturnKind }
func (*IfStmt) Kind() StmtKind     { return IfKind }
func (*FuncStmt) Kind() StmtKind   { return FuncKind }
func (*BlockStmt) Kind() StmtKind  { return BlockKind }
func (*ExprStmt) Kind() StmtKind   { return ExprStmtKind }

// Token returns the token of the wrapped expression.
func (s *ExprStmt) Token() Token {
	if s.X == nil {
		return s.Tok
	}
	return s.X.Token()
}
