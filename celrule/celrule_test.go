package celrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescuedex/apicheck/schema"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		value any
		want  bool
	}{
		{
			name:  "numeric range holds",
			expr:  `value >= 1.0 && value <= 100.0`,
			value: 42.0,
			want:  true,
		},
		{
			name:  "numeric range violated",
			expr:  `value >= 1.0 && value <= 100.0`,
			value: 0.0,
			want:  false,
		},
		{
			name:  "string membership",
			expr:  `value in ["small", "medium", "large"]`,
			value: "medium",
			want:  true,
		},
		{
			name:  "string membership violated",
			expr:  `value in ["small", "medium", "large"]`,
			value: "giant",
			want:  false,
		},
		{
			name:  "string prefix",
			expr:  `value.startsWith("https://")`,
			value: "https://rescuedex.example.com",
			want:  true,
		},
		{
			name:  "eval error yields false",
			expr:  `value.startsWith("x")`,
			value: 12.0,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, check(tt.value))
		})
	}
}

func TestCompileRejectsNonBool(t *testing.T) {
	_, err := Compile(`"definitely a string"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bool")
}

func TestCompileRejectsBadSyntax(t *testing.T) {
	_, err := Compile(`value >=`)
	require.Error(t, err)
}

func TestMustCompile(t *testing.T) {
	assert.NotPanics(t, func() { MustCompile(`value == "ok"`) })
	assert.Panics(t, func() { MustCompile(`not valid ((`) })
}

func TestPredicateInSchema(t *testing.T) {
	evenID := MustCompile(`int(value) % 2 == 0`)
	s := schema.Schema{
		"id": schema.Number().WithRequired().WithCheck(evenID),
	}

	result := schema.ValidateObject(map[string]any{"id": float64(4)}, s)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	result = schema.ValidateObject(map[string]any{"id": float64(3)}, s)
	require.False(t, result.Valid)
	assert.Equal(t, "failed custom validation", result.Errors[0].Message)
}
