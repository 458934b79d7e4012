// Package syntax implements lexical and syntactic analysis for the
// pseudocode language.
package syntax

import "fmt"

// Kind classifies a lexical token.
type Kind uint8

const (
	// Special tokens
	_Illegal Kind = iota // unrecognised input, also the zero value
	_EOF                 // end of input
	_Newline             // '\n', terminates statements

	// Literals (carry a view into the source)
	_Name   // identifier: x, my_func
	_Number // decimal digits: 123
	_String // quoted text: "hi", 'hi'

	// Operators
	_Assign // =
	_Eql    // ==
	_Neq    // !=
	_Lss    // <
	_Leq    // <=
	_Gtr    // >
	_Geq    // >=
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Caret  // ^

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Colon  // :

	// Keywords
	_Global
	_For
	_Endfor
	_Next
	_While
	_Endwhile
	_Do
	_Until
	_If
	_Then
	_Else
	_Endif
	_Switch
	_Case
	_Default
	_Endswitch
	_Function
	_Endfunction
	_Procedure
	_Endprocedure
	_Return
	_True
	_False
	_And    // AND
	_Or     // OR
	_Not    // NOT
	_IntDiv // DIV
	_Mod    // MOD

	kindCount
)

var kindNames = [...]string{
	_Illegal: "ILLEGAL",
	_EOF:     "EOF",
	_Newline: "NEWLINE",

	_Name:   "NAME",
	_Number: "NUMBER",
	_String: "STRING",

	_Assign: "=",
	_Eql:    "==",
	_Neq:    "!=",
	_Lss:    "<",
	_Leq:    "<=",
	_Gtr:    ">",
	_Geq:    ">=",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Caret:  "^",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Colon:  ":",

	_Global:       "global",
	_For:          "for",
	_Endfor:       "endfor",
	_Next:         "next",
	_While:        "while",
	_Endwhile:     "endwhile",
	_Do:           "do",
	_Until:        "until",
	_If:           "if",
	_Then:         "then",
	_Else:         "else",
	_Endif:        "endif",
	_Switch:       "switch",
	_Case:         "case",
	_Default:      "default",
	_Endswitch:    "endswitch",
	_Function:     "function",
	_Endfunction:  "endfunction",
	_Procedure:    "procedure",
	_Endprocedure: "endprocedure",
	_Return:       "return",
	_True:         "true",
	_False:        "false",
	_And:          "AND",
	_Or:           "OR",
	_Not:          "NOT",
	_IntDiv:       "DIV",
	_Mod:          "MOD",
}

// String returns the spelling of keywords and operators, or an upper-case
// class name for the other kinds.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= _Global && k <= _Mod
}

// IsOperator reports whether k is a symbolic operator.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Caret
}

// IsLiteral reports whether tokens of kind k carry source text.
func (k Kind) IsLiteral() bool {
	return k == _Name || k == _Number || k == _String
}

// isBlockEnder reports whether k closes a block without belonging to it.
func (k Kind) isBlockEnder() bool {
	switch k {
	case _Endif, _Endfor, _Endwhile, _Endswitch, _Endfunction, _Endprocedure, _Else:
		return true
	}
	return false
}

// Token is a classified unit of input. Lit is a substring of the scanned
// source and shares its memory; it is set only for literal kinds.
type Token struct {
	Kind Kind
	Lit  string
	Offs int // byte offset of the first character
}

func (t Token) String() string {
	if t.Kind.IsLiteral() {
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lit)
	}
	return t.Kind.String()
}

// keywords is written once during package initialisation and only read
// afterwards, so concurrent parses may share it.
var keywords = map[string]Kind{
	"global":       _Global,
	"for":          _For,
	"endfor":       _Endfor,
	"next":         _Next,
	"while":        _While,
	"endwhile":     _Endwhile,
	"do":           _Do,
	"until":        _Until,
	"if":           _If,
	"then":         _Then,
	"else":         _Else,
	"endif":        _Endif,
	"switch":       _Switch,
	"case":         _Case,
	"default":      _Default,
	"endswitch":    _Endswitch,
	"function":     _Function,
	"endfunction":  _Endfunction,
	"procedure":    _Procedure,
	"endprocedure": _Endprocedure,
	"return":       _Return,
	"true":         _True,
	"false":        _False,
	"AND":          _And,
	"OR":           _Or,
	"NOT":          _Not,
	"DIV":          _IntDiv,
	"MOD":          _Mod,
}

// LookupKeyword returns the keyword kind spelled exactly ident, or _Name.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Name
}

// precedence orders binding strength. And and Or sit between the
// comparisons and arithmetic.
type precedence uint8

const (
	precLowest precedence = iota
	precEquality
	precInequality
	precAnd
	precOr
	precSum
	precProduct
	precPrefix
	precCall
)

// precedence returns the binding strength of k in infix position.
func (k Kind) precedence() precedence {
	switch k {
	case _Lss, _Leq, _Gtr, _Geq:
		return precInequality
	case _Eql, _Neq:
		return precEquality
	case _Add, _Sub:
		return precSum
	case _Div, _Mul, _IntDiv, _Mod:
		return precProduct
	case _And:
		return precAnd
	case _Or:
		return precOr
	case _Lparen:
		return precCall
	}
	return precLowest
}
