package inflector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowercaseFirstLetter(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Index", "index"},
		{"index", "index"},
		{"ProductDetail", "productDetail"},
		{"Ärger", "ärger"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, LowercaseFirstLetter(tt.input))
		})
	}
}

func TestUppercaseFirstLetter(t *testing.T) {
	assert.Equal(t, "", UppercaseFirstLetter(""))
	assert.Equal(t, "ProductId", UppercaseFirstLetter("productId"))
	assert.Equal(t, "X", UppercaseFirstLetter("x"))
}

func TestCamelize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"detail", "Detail"},
		{"product-detail", "ProductDetail"},
		{"get_items", "GetItems"},
		{"getItems", "GetItems"},
		{"a--b..c", "ABC"},
		{"v2-list", "V2List"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camelize(tt.input))
		})
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"productId", []string{"product", "Id"}},
		{"ReadProcTree", []string{"Read", "Proc", "Tree"}},
		{"HTMLParser", []string{"HTML", "Parser"}},
		{"productID", []string{"product", "ID"}},
		{"page_size", []string{"page", "size"}},
		{"File2Dir", []string{"File2", "Dir"}},
		{"simple", []string{"simple"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitWords(tt.input))
		})
	}
}

func TestCamelToWords(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"productId", "Product Id"},
		{"id", "Id"},
		{"page_size", "Page Size"},
		{"sortOrder", "Sort Order"},
		{"HTMLParser", "Html Parser"},
		{"created-at", "Created At"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CamelToWords(tt.input))
		})
	}
}
