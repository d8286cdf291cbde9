package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"12x4", "4x12"},
		{"4x12", "4x12"},
		{" 4 X 12 ", "4x12"},
		{"13×5", "5x13"},
		{"3*8", "3x8"},
		{"10-3.5", "3.5x10"},
		{"3,5x10", "3.5x10"},
		{"4mx12m", "4x12"},
		{"", ""},
		{"Digital", "digital"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, Size(tc.in), "Size(%q)", tc.in)
	}
}
