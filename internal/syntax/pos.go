package syntax

import "fmt"

// Pos is a position in a source buffer.
// The zero value is an invalid position.
type Pos struct {
	offs int    // byte offset
	line uint32 // 1-based line number
	col  uint32 // 1-based column number (byte offset in line)
}

// NewPos creates a Pos. Line and column numbers are 1-based.
func NewPos(offs int, line, col uint32) Pos {
	return Pos{offs: offs, line: line, col: col}
}

// String returns "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Offset returns the byte offset into the source.
func (p Pos) Offset() int {
	return p.offs
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() uint32 {
	return p.col
}

// PosAt resolves a byte offset in src to a line and column.
// Offsets past the end of src are clamped to len(src).
func PosAt(src string, offs int) Pos {
	if offs > len(src) {
		offs = len(src)
	}
	if offs < 0 {
		offs = 0
	}
	line, col := uint32(1), uint32(1)
	for i := 0; i < offs; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Pos{offs: offs, line: line, col: col}
}
