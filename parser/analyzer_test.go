package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestClassifyVariables(t *testing.T) {
	tests := []struct {
		input string
		want  VariableCount
	}{
		{"3+4=7", NoVariables},
		{"x+5=0", OneVariable},
		{"x^3+x=5", OneVariable},
		{"x+y=3", MultipleVariables},
		{"x + x + y + x = 0", MultipleVariables},
		{"a = b = c", MultipleVariables},
		// Classification does not depend on the input being an equation.
		{"x y x", MultipleVariables},
		{"", NoVariables},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVariables(lex(t, tt.input)))
		})
	}
}

func TestClassifyVariablesIgnoresCursor(t *testing.T) {
	tokens := lex(t, "x + y = 3")

	r := NewRecognizer(tokens)
	assert.True(t, r.AcceptEquation())
	assert.True(t, r.Done())

	// The consumed cursor has no effect on the analysis of the original sequence.
	assert.Equal(t, MultipleVariables, ClassifyVariables(tokens))
}

func TestVariables(t *testing.T) {
	assert.Equal(t, []string{"x"}, Variables(lex(t, "x^2 + x = x")))
	assert.Equal(t, []string{"a", "b", "y"}, Variables(lex(t, "y + b = a + y")))
	assert.Equal(t, 0, len(Variables(lex(t, "1 = 1"))))
}

func TestVariableCountString(t *testing.T) {
	assert.Equal(t, "0", NoVariables.String())
	assert.Equal(t, "1", OneVariable.String())
	assert.Equal(t, ">1", MultipleVariables.String())
}
