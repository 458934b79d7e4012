package syntax

// Scanner performs lexical analysis on pseudocode source.
// It is a single-pass state machine with one byte of lookahead.
type Scanner struct {
	source
}

// NewScanner creates a Scanner over src. Tokens returned by the scanner
// refer to src and remain valid as long as src does.
func NewScanner(src string) *Scanner {
	s := &Scanner{}
	s.init(src)
	return s
}

// Source returns the buffer being scanned.
func (s *Scanner) Source() string {
	return s.buf
}

// Next scans and returns the next token. Malformed input degrades to
// _Illegal tokens; the only error is a quoted literal left open at the
// end of input. After _EOF every call returns _EOF again.
func (s *Scanner) Next() (Token, error) {
	// 1. Skip whitespace (not including '\n')
	s.skipWhitespace()

	// 2. Comments produce no token; the newline ending one does
	if s.ch == '/' && s.peek() == '/' {
		s.skipLineComment()
	}

	tok := Token{Offs: s.offs}

	// 3. Scan token based on current character
	switch c := s.ch; {
	case s.atEOF():
		tok.Kind = _EOF

	case c == '\n':
		s.nextch()
		tok.Kind = _Newline

	case isLetter(c):
		tok.Lit = s.scanIdent()
		tok.Kind = LookupKeyword(tok.Lit)

	case isDigit(c):
		tok.Kind = _Number
		tok.Lit = s.scanNumber()

	case c == '"' || c == '\'':
		tok.Kind = _String
		lit, ok := s.scanString()
		if !ok {
			return tok, s.errorAt(UnterminatedString, tok, "string literal not terminated")
		}
		tok.Lit = lit

	default:
		tok.Kind = s.scanOperator()
	}

	return tok, nil
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// skipLineComment skips from "//" up to the newline or end of input.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && !s.atEOF() {
		s.nextch()
	}
}

// scanIdent scans a maximal run of letters, digits and underscores.
func (s *Scanner) scanIdent() string {
	start := s.offs
	for isWordChar(s.ch) {
		s.nextch()
	}
	return s.segment(start)
}

// scanNumber scans a maximal run of decimal digits. Conversion and range
// checking happen in the parser.
func (s *Scanner) scanNumber() string {
	start := s.offs
	for isDigit(s.ch) {
		s.nextch()
	}
	return s.segment(start)
}

// scanString scans a literal delimited by the current quote byte and
// returns the text between the quotes. ok is false if the input ends
// before the closing quote.
func (s *Scanner) scanString() (lit string, ok bool) {
	quote := s.ch
	s.nextch() // skip opening quote
	start := s.offs
	for !s.atEOF() {
		if s.ch == quote {
			lit = s.segment(start)
			s.nextch()
			return lit, true
		}
		s.nextch()
	}
	return s.segment(start), false
}

// scanOperator scans an operator or delimiter. Unknown bytes, and a '!'
// not followed by '=', yield _Illegal.
func (s *Scanner) scanOperator() Kind {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		return _Add
	case '-':
		return _Sub
	case '*':
		return _Mul
	case '/':
		return _Div
	case '^':
		return _Caret
	case '=':
		if s.ch == '=' {
			s.nextch()
			return _Eql
		}
		return _Assign
	case '!':
		if s.ch == '=' {
			s.nextch()
			return _Neq
		}
		return _Illegal
	case '<':
		if s.ch == '=' {
			s.nextch()
			return _Leq
		}
		return _Lss
	case '>':
		if s.ch == '=' {
			s.nextch()
			return _Geq
		}
		return _Gtr
	case '(':
		return _Lparen
	case ')':
		return _Rparen
	case '[':
		return _Lbrack
	case ']':
		return _Rbrack
	case '{':
		return _Lbrace
	case '}':
		return _Rbrace
	case ',':
		return _Comma
	case ':':
		return _Colon
	}
	return _Illegal
}

// errorAt builds a SyntaxError for tok.
func (s *Scanner) errorAt(code ErrorCode, tok Token, msg string) *SyntaxError {
	return &SyntaxError{Code: code, Tok: tok, Pos: PosAt(s.buf, tok.Offs), Msg: msg}
}

// Tokens scans src to the end and returns every token including the
// final _EOF.
func Tokens(src string) ([]Token, error) {
	s := NewScanner(src)
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == _EOF {
			return toks, nil
		}
	}
}
