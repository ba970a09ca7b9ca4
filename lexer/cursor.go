package lexer

import "strings"

// Cursor iterates byte-by-byte over source text, tracking byte offset and
// 1-based line/column. It is the only place in the front end that touches
// raw characters; the lexer builds tokens on top of it and everything
// downstream works from token positions.
type Cursor struct {
	src  string
	pos  int // index of the next unread byte
	line int
	col  int // 1-based column of the next unread byte
}

// NewCursor creates a Cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, col: 1}
}

// AtEnd reports whether all input has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Next consumes and returns the next byte, or (0, false) at end of input.
func (c *Cursor) Next() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return ch, true
}

// Peek returns the next byte without consuming it, or (0, false) at end.
func (c *Cursor) Peek() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.pos], true
}

// PeekN returns the byte n positions ahead of the read point without
// consuming anything. PeekN(0) is Peek.
func (c *Cursor) PeekN(n int) (byte, bool) {
	if c.pos+n >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos+n], true
}

// LookingAt checks whether the unread input starts with prefix.
// Useful for multi-character operator detection ("<<=", "->", "==").
func (c *Cursor) LookingAt(prefix string) bool {
	return strings.HasPrefix(c.src[c.pos:], prefix)
}

// Skip consumes n bytes, updating line/column state for each. Returns the
// number of bytes actually consumed (may be less than n at end of input).
func (c *Cursor) Skip(n int) int {
	skipped := 0
	for i := 0; i < n; i++ {
		if _, ok := c.Next(); !ok {
			break
		}
		skipped++
	}
	return skipped
}

// Pos returns the byte offset of the next unread byte.
func (c *Cursor) Pos() int { return c.pos }

// Line returns the 1-based line number of the next unread byte.
func (c *Cursor) Line() int { return c.line }

// Col returns the 1-based column of the next unread byte.
func (c *Cursor) Col() int { return c.col }

// Slice returns the source text between byte offsets start and end.
func (c *Cursor) Slice(start, end int) string { return c.src[start:end] }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }
