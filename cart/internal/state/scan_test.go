package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Classification
	}{
		{
			name:     "scan code with numeric suffix",
			input:    "POS_PRODUCT_7",
			expected: Classification{Kind: KindScanCode, ProductID: 7},
		},
		{
			name:     "scan code with surrounding whitespace",
			input:    "  POS_PRODUCT_42  ",
			expected: Classification{Kind: KindScanCode, ProductID: 42},
		},
		{
			name:     "scan code with malformed suffix",
			input:    "POS_PRODUCT_abc",
			expected: Classification{Kind: KindScanCode, ProductID: 0},
		},
		{
			name:     "scan code with missing suffix",
			input:    "POS_PRODUCT_",
			expected: Classification{Kind: KindScanCode, ProductID: 0},
		},
		{
			name:     "scan code with negative suffix",
			input:    "POS_PRODUCT_-3",
			expected: Classification{Kind: KindScanCode, ProductID: 0},
		},
		{
			name:     "free text is lowercased",
			input:    "Red T-Shirt",
			expected: Classification{Kind: KindFreeText, Query: "red t-shirt"},
		},
		{
			name:     "free text containing the prefix mid-string",
			input:    "my POS_PRODUCT_7",
			expected: Classification{Kind: KindFreeText, Query: "my pos_product_7"},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: Classification{Kind: KindFreeText, Query: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}
