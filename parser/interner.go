package parser

// Interner keeps one canonical string per identifier spelling.
//
// Equations repeat their variable constantly ("x^3 + 2x^2 + x = 1" spells x
// three times), and a session checks many lines over the same few names, so
// the lexer hands out interned names instead of allocating one per token.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// InternBytes converts a byte slice to a string and interns it.
func (i *Interner) InternBytes(b []byte) string {
	// The compiler avoids allocating for map lookups keyed by string(b).
	if interned, ok := i.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	i.pool[s] = s
	return s
}
