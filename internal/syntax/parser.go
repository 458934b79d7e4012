package syntax

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds the nesting of expressions and blocks.
const DefaultMaxDepth = 512

// Parser performs syntax analysis on pseudocode source. It keeps two
// tokens of lookahead and stops at the first error.
type Parser struct {
	scanner *Scanner

	tok  Token // current token
	peek Token // token after tok

	depth    int // current nesting depth
	maxDepth int
}

// NewParser creates a Parser reading from s and primes both lookahead
// tokens. It fails only if one of the first two tokens cannot be scanned.
func NewParser(s *Scanner) (*Parser, error) {
	p := &Parser{
		scanner:  s,
		maxDepth: DefaultMaxDepth,
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses src into a Program.
func Parse(src string) (*Program, error) {
	p, err := NewParser(NewScanner(src))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// SetMaxDepth changes the nesting limit. n <= 0 restores the default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// ----------------------------------------------------------------------------
// Token navigation

// next shifts peek into tok and scans a new peek.
func (p *Parser) next() error {
	p.tok = p.peek
	tok, err := p.scanner.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// expectPeek advances if peek has kind k and fails otherwise.
func (p *Parser) expectPeek(k Kind) error {
	if p.peek.Kind != k {
		return p.unexpected(p.peek, "expected "+k.String())
	}
	return p.next()
}

// skipNewlines advances past any newline tokens.
func (p *Parser) skipNewlines() error {
	for p.tok.Kind == _Newline {
		if err := p.next(); err != nil {
			return err
		}
	}
	return nil
}

// enter increments the nesting depth; leave must be deferred after it.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(NestingTooDeep, p.tok, fmt.Sprintf("nesting exceeds %d levels", p.maxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) errorAt(code ErrorCode, tok Token, msg string) error {
	return p.scanner.errorAt(code, tok, msg)
}

// unexpected reports tok as an UnexpectedToken error. context, if not
// empty, says what was wanted instead.
func (p *Parser) unexpected(tok Token, context string) error {
	msg := "unexpected " + tok.String()
	if context != "" {
		msg += ", " + context
	}
	return p.errorAt(UnexpectedToken, tok, msg)
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the whole input. On error no Program is returned.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	for p.tok.Kind != _EOF {
		if p.tok.Kind != _Newline {
			s, err := p.stmt()
			if err != nil {
				return nil, err
			}
			prog.Stmts = append(prog.Stmts, s)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// ----------------------------------------------------------------------------
// Statements
//
// Statement parsers start with tok on the statement's first token and
// return with tok on its last one.

// stmt parses one statement and checks that it ends the line.
func (p *Parser) stmt() (Stmt, error) {
	var s Stmt
	var err error

	switch {
	case p.tok.Kind == _Return:
		s, err = p.returnStmt()

	case p.tok.Kind == _If:
		s, err = p.ifStmt()

	case p.tok.Kind == _Function || p.tok.Kind == _Procedure:
		s, err = p.funcStmt()

	case p.tok.Kind == _Global || p.tok.Kind == _Name && p.peek.Kind == _Assign:
		s, err = p.assignStmt()

	default:
		s, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	if p.peek.Kind != _Newline && p.peek.Kind != _EOF {
		return nil, p.unexpected(p.peek, "expected end of statement")
	}
	return s, nil
}

// assignStmt parses: [global] name = expr
func (p *Parser) assignStmt() (*AssignStmt, error) {
	s := &AssignStmt{}
	s.Tok = p.tok

	if p.tok.Kind == _Global {
		s.Global = true
		if err := p.expectPeek(_Name); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != _Name {
		return nil, p.unexpected(p.tok, "expected identifier")
	}
	s.Name = p.ident()

	if err := p.expectPeek(_Assign); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	v, err := p.expr(precLowest)
	if err != nil {
		return nil, err
	}
	s.Value = v
	return s, nil
}

// returnStmt parses: return [expr]
func (p *Parser) returnStmt() (*ReturnStmt, error) {
	s := &ReturnStmt{}
	s.Tok = p.tok

	if p.peek.Kind == _Newline || p.peek.Kind == _EOF {
		return s, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.expr(precLowest)
	if err != nil {
		return nil, err
	}
	s.Value = v
	return s, nil
}

// ifStmt parses:
//
//	if expr then
//	    block
//	[else
//	    block]
//	endif
func (p *Parser) ifStmt() (*IfStmt, error) {
	s := &IfStmt{}
	s.Tok = p.tok

	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.expr(precLowest)
	if err != nil {
		return nil, err
	}
	s.Cond = cond

	if err := p.expectPeek(_Then); err != nil {
		return nil, err
	}
	if s.Then, err = p.blockAfterNewline(); err != nil {
		return nil, err
	}

	if p.tok.Kind == _Else {
		if s.Else, err = p.blockAfterNewline(); err != nil {
			return nil, err
		}
	}

	if p.tok.Kind != _Endif {
		return nil, p.unexpected(p.tok, "expected endif")
	}
	return s, nil
}

// funcStmt parses:
//
//	function name(param, ...)
//	    block
//	endfunction
//
// or the same with procedure/endprocedure.
func (p *Parser) funcStmt() (*FuncStmt, error) {
	s := &FuncStmt{IsProcedure: p.tok.Kind == _Procedure}
	s.Tok = p.tok

	if err := p.expectPeek(_Name); err != nil {
		return nil, err
	}
	s.Name = p.ident()

	if err := p.expectPeek(_Lparen); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	s.Params = params

	if s.Body, err = p.blockAfterNewline(); err != nil {
		return nil, err
	}

	end := _Endfunction
	if s.IsProcedure {
		end = _Endprocedure
	}
	if p.tok.Kind != end {
		return nil, p.unexpected(p.tok, "expected "+end.String())
	}
	return s, nil
}

// paramList parses identifiers separated by commas. It starts on '(' and
// returns on ')'.
func (p *Parser) paramList() ([]*Identifier, error) {
	var params []*Identifier
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Kind == _Rparen {
		return params, nil
	}
	for {
		if p.tok.Kind != _Name {
			return nil, p.unexpected(p.tok, "expected parameter name")
		}
		params = append(params, p.ident())

		if err := p.next(); err != nil {
			return nil, err
		}
		switch p.tok.Kind {
		case _Comma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case _Rparen:
			return params, nil
		default:
			return nil, p.unexpected(p.tok, "expected , or )")
		}
	}
}

// blockAfterNewline requires a newline after the current token and parses
// the block that follows it.
func (p *Parser) blockAfterNewline() (*BlockStmt, error) {
	if err := p.expectPeek(_Newline); err != nil {
		return nil, err
	}
	return p.blockStmt()
}

// blockStmt parses statements until a block ender or end of input and
// returns with tok on that token. Which ender is acceptable is the
// caller's decision.
func (p *Parser) blockStmt() (*BlockStmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	b := &BlockStmt{}
	b.Tok = p.tok

	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.tok.Kind == _EOF || p.tok.Kind.isBlockEnder() {
			return b, nil
		}
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

// exprStmt parses an expression used as a statement.
func (p *Parser) exprStmt() (*ExprStmt, error) {
	x, err := p.expr(precLowest)
	if err != nil {
		return nil, err
	}
	s := &ExprStmt{X: x}
	s.Tok = x.Token()
	return s, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression whose operators all bind tighter than prec.
// Implements precedence climbing: each operator's right operand is parsed
// at the operator's own precedence, so equal-precedence chains are
// gathered by this loop and associate to the left.
func (p *Parser) expr(prec precedence) (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	bare := p.tok.Kind == _Name
	x, err := p.operand()
	if err != nil {
		return nil, err
	}

	for p.peek.Kind != _Newline && p.peek.Kind != _EOF && p.peek.Kind.precedence() > prec {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind == _Lparen {
			// Only a bare identifier can be called.
			fun, ok := x.(*Identifier)
			if !ok || !bare {
				return nil, p.unexpected(p.tok, "")
			}
			x, err = p.callExpr(fun)
		} else {
			x, err = p.infixExpr(x)
		}
		if err != nil {
			return nil, err
		}
		bare = false
	}
	return x, nil
}

// operand parses a prefix operation or a primary expression.
func (p *Parser) operand() (Expr, error) {
	switch p.tok.Kind {
	case _Add, _Sub, _Not:
		return p.prefixExpr()

	case _Name:
		return p.ident(), nil

	case _Number:
		return p.intLit()

	case _String:
		x := &StringLit{Value: p.tok.Lit}
		x.Tok = p.tok
		return x, nil

	case _True, _False:
		x := &BoolLit{Value: p.tok.Kind == _True}
		x.Tok = p.tok
		return x, nil

	case _Lparen:
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.expr(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(_Rparen); err != nil {
			return nil, err
		}
		return x, nil

	default:
		return nil, p.unexpected(p.tok, "expected expression")
	}
}

// prefixExpr parses: (+|-|NOT) operand
func (p *Parser) prefixExpr() (*PrefixExpr, error) {
	x := &PrefixExpr{Op: prefixOps[p.tok.Kind]}
	x.Tok = p.tok

	if err := p.next(); err != nil {
		return nil, err
	}
	y, err := p.expr(precPrefix)
	if err != nil {
		return nil, err
	}
	x.X = y
	return x, nil
}

// infixExpr parses the operator in tok and its right operand.
func (p *Parser) infixExpr(left Expr) (*InfixExpr, error) {
	op, ok := infixOps[p.tok.Kind]
	if !ok {
		return nil, p.unexpected(p.tok, "expected operator")
	}
	x := &InfixExpr{Op: op, X: left}
	x.Tok = p.tok

	prec := p.tok.Kind.precedence()
	if err := p.next(); err != nil {
		return nil, err
	}
	y, err := p.expr(prec)
	if err != nil {
		return nil, err
	}
	x.Y = y
	return x, nil
}

// callExpr parses the argument list of fun. It starts on '(' and returns
// on ')'. Newlines are allowed around the parentheses and the commas.
func (p *Parser) callExpr(fun *Identifier) (*CallExpr, error) {
	call := &CallExpr{Fun: fun}
	call.Tok = fun.Tok

	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if p.tok.Kind == _Rparen {
		return call, nil
	}

	for {
		arg, err := p.expr(precLowest)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		switch p.tok.Kind {
		case _Comma:
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
		case _Rparen:
			return call, nil
		default:
			return nil, p.unexpected(p.tok, "expected , or )")
		}
	}
}

// ident returns an Identifier for the _Name token in tok.
func (p *Parser) ident() *Identifier {
	x := &Identifier{Value: p.tok.Lit}
	x.Tok = p.tok
	return x
}

// intLit converts the _Number token in tok. Values that do not fit in an
// int64 are rejected rather than truncated.
func (p *Parser) intLit() (*IntLit, error) {
	v, err := strconv.ParseInt(p.tok.Lit, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, p.errorAt(IntegerTooLarge, p.tok, "integer literal "+p.tok.Lit+" out of range")
		}
		return nil, p.errorAt(InvalidNumber, p.tok, "invalid number literal "+p.tok.Lit)
	}
	x := &IntLit{Value: v}
	x.Tok = p.tok
	return x, nil
}
