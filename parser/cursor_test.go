package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCursor(t *testing.T) {
	tokens := lex(t, "x = 1")
	c := NewCursor(tokens)

	assert.Equal(t, 0, c.Pos())
	assert.False(t, c.Done())
	assert.Equal(t, Token(tokens[0]), c.Peek())

	c.Advance()
	c.Advance()
	assert.Equal(t, 2, c.Pos())
	assert.Equal(t, 1, len(c.Remaining()))

	c.Advance()
	assert.True(t, c.Done())
	assert.Zero(t, c.Peek())

	// Advancing past the end is a no-op.
	c.Advance()
	assert.Equal(t, 3, c.Pos())

	c.Reset(1)
	assert.Equal(t, tokens[1], c.Peek())
}

func TestCursorEmpty(t *testing.T) {
	c := NewCursor(nil)
	assert.True(t, c.Done())
	assert.Zero(t, c.Peek())
	assert.Equal(t, 0, len(c.Remaining()))
}
