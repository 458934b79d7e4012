package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a SyntaxError.
type ErrorCode uint8

const (
	UnexpectedToken    ErrorCode = iota // catch-all grammar violation
	UnterminatedString                  // quoted literal runs off the end of input
	InvalidNumber                       // numeric literal text is not a number
	IntegerTooLarge                     // numeric literal does not fit in an int64
	NestingTooDeep                      // recursion limit exceeded
)

// Sentinel errors, one per code. A *SyntaxError unwraps to the sentinel
// matching its code.
var (
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrInvalidNumber      = errors.New("invalid number literal")
	ErrTooLargeInteger    = errors.New("integer literal too large")
	ErrNestingTooDeep     = errors.New("nesting too deep")
)

var codeErrors = [...]error{
	UnexpectedToken:    ErrUnexpectedToken,
	UnterminatedString: ErrUnterminatedString,
	InvalidNumber:      ErrInvalidNumber,
	IntegerTooLarge:    ErrTooLargeInteger,
	NestingTooDeep:     ErrNestingTooDeep,
}

func (c ErrorCode) String() string {
	if int(c) < len(codeErrors) {
		return codeErrors[c].Error()
	}
	return fmt.Sprintf("ErrorCode(%d)", c)
}

// SyntaxError is the first lexical or grammatical violation found in a
// source unit.
type SyntaxError struct {
	Code ErrorCode
	Tok  Token // offending token
	Pos  Pos
	Msg  string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns the sentinel error for e.Code.
func (e *SyntaxError) Unwrap() error {
	if int(e.Code) < len(codeErrors) {
		return codeErrors[e.Code]
	}
	return nil
}

// IsIncomplete reports whether err was caused by input ending too early,
// such as an open block or string. More input may make it parse.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case UnterminatedString:
		return true
	case UnexpectedToken:
		return se.Tok.Kind == _EOF
	}
	return false
}

// Snippet formats err with the offending source line, one line of
// context either side and a caret under the error column. Errors that are
// not a *SyntaxError are returned as their message.
func Snippet(err error, src string) string {
	var se *SyntaxError
	if !errors.As(err, &se) || !se.Pos.IsValid() {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	line := int(se.Pos.Line())
	if line > len(lines) {
		line = len(lines)
	}
	width := len(fmt.Sprint(line + 1))

	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %s: %s\n\n", se.Pos, se.Msg)
	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(lines) {
			continue
		}
		fmt.Fprintf(&b, "%*d | %s\n", width, n, lines[n-1])
		if n == line {
			col := int(se.Pos.Col())
			fmt.Fprintf(&b, "%*s | %s^\n", width, "", strings.Repeat(" ", col-1))
		}
	}
	return b.String()
}
