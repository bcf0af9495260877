package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "ana@example.com", want: true},
		{input: "Ana.Lopez@Example.COM", want: true},
		{input: "  ana@example.com  ", want: true},
		{input: "a@b.co", want: true},
		{input: "", want: false},
		{input: "ana.example.com", want: false},
		{input: "ana@example", want: false},
		{input: "ana@@example.com", want: false},
		{input: "ana@exa@mple.com", want: false},
		{input: "ana lopez@example.com", want: false},
		{input: "@example.com", want: false},
		{input: "ana@.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidEmail(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
