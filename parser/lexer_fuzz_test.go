package parser

import (
	"testing"
)

func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Symbols
		"=", "+", "-", "^", "(", ")", ";", "*", "/",

		// Numbers
		"0", "7", "123", "2.5", "007", "2.", ".5", "1.2.3",

		// Identifiers
		"x", "alpha", "_tmp", "x2", "X_1",

		// Equations
		"x^3+x=5",
		"-2x^4 + x^2 - 3 = x",
		"x^-2=0",
		"3x y = 1",

		// Whitespace
		" ", "\t", "\n", "\r\n", "  x  =  1  ",

		// Illegal bytes
		"é", "x = 1 €", "\x00", "\x7f",

		"",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Lexer panicked on input %q: %v", data, r)
			}
		}()

		tokens, err := NewLexer(data, "fuzz-test").ScanAll()
		if err != nil {
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("unexpected error type %T for %q", err, data)
			}
			if lexErr.Pos.Offset >= len(data) || data[lexErr.Pos.Offset] != lexErr.Char {
				t.Errorf("LexError at offset %d does not point at %q", lexErr.Pos.Offset, lexErr.Char)
			}
			return
		}

		prevOffset := -1
		for i, tok := range tokens {
			pos := tok.Pos()
			if pos.Line < 1 {
				t.Errorf("Token %d has invalid line %d", i, pos.Line)
			}
			if pos.Column < 1 {
				t.Errorf("Token %d has invalid column %d", i, pos.Column)
			}
			if pos.Offset <= prevOffset {
				t.Errorf("Token %d: offset %d does not follow %d", i, pos.Offset, prevOffset)
			}
			prevOffset = pos.Offset

			if stop := end(tok).Offset; stop > len(data) {
				t.Errorf("Token %d: end %d > data length %d", i, stop, len(data))
				continue
			}
			if text := tok.String(); string(data[pos.Offset:pos.Offset+len(text)]) != text {
				t.Errorf("Token %d: %q is not the source text at offset %d", i, text, pos.Offset)
			}
		}
	})
}
