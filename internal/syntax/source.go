package syntax

// source is a byte reader over an in-memory buffer.
// Keywords, operators and delimiters are all single-byte; other bytes of a
// multi-byte encoding scan as _Illegal.
type source struct {
	buf    string // entire input, never copied
	offs   int    // offset of ch
	rdOffs int    // offset of the byte after ch
	ch     byte   // current byte, 0 at end of input
}

func (s *source) init(buf string) {
	s.buf = buf
	s.offs = 0
	s.rdOffs = 0
	s.nextch()
}

// nextch advances to the next byte. At end of input ch is 0 and offs is
// len(buf).
func (s *source) nextch() {
	if s.rdOffs >= len(s.buf) {
		s.offs = len(s.buf)
		s.ch = 0
		return
	}
	s.offs = s.rdOffs
	s.ch = s.buf[s.rdOffs]
	s.rdOffs++
}

// peek returns the byte after ch without consuming it.
func (s *source) peek() byte {
	if s.rdOffs < len(s.buf) {
		return s.buf[s.rdOffs]
	}
	return 0
}

// atEOF reports whether the input is exhausted. A NUL byte inside the
// buffer is input, not the end of it.
func (s *source) atEOF() bool {
	return s.offs >= len(s.buf)
}

// segment returns the view buf[start:offs].
func (s *source) segment(start int) string {
	return s.buf[start:s.offs]
}

// Character classification helpers

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isWordChar reports whether c may continue an identifier.
func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// isWhitespace reports whether c is skipped between tokens.
// '\n' is a token and is not included.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
