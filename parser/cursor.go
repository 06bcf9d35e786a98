package parser

// Cursor is a read position into an immutable token sequence. Advancing is
// the only mutation; the underlying slice is never copied or modified.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor returns a cursor positioned at the first token.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token, or nil at the end of the sequence.
func (c *Cursor) Peek() Token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	return c.tokens[c.pos]
}

// Advance moves past the current token. It is a no-op at the end.
func (c *Cursor) Advance() {
	if c.pos < len(c.tokens) {
		c.pos++
	}
}

// Pos returns the index of the current token.
func (c *Cursor) Pos() int {
	return c.pos
}

// Reset moves the cursor back to a position previously returned by Pos.
func (c *Cursor) Reset(pos int) {
	c.pos = pos
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Remaining returns the unconsumed suffix without copying it.
func (c *Cursor) Remaining() []Token {
	return c.tokens[c.pos:]
}
