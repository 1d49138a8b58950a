package source

import "fmt"

// Pos is the position the scanner attached to an identifier or literal.
// Line and Col are 1-based; the zero Pos means "no position".
type Pos struct {
	File FileID
	Line uint32
	Col  uint32
}

// NoPos is the zero position.
var NoPos = Pos{}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool {
	return p.Line != 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before orders positions by file, then line, then column.
func (p Pos) Before(other Pos) bool {
	if p.File != other.File {
		return p.File < other.File
	}
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
