package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleValues(t *testing.T) {
	doc := `Returns the available colors.
@editor description Pick the color of the product
@editor format   color   `

	fields, diagnostics := Parse(doc)

	assert.Empty(t, diagnostics)
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Key: "description", Value: "Pick the color of the product"}, fields[0])
	assert.Equal(t, Field{Key: "format", Value: "color"}, fields[1])
}

func TestParse_JSONValues(t *testing.T) {
	doc := `
@editor options {"grid_columns": 4, "hidden": false}
@editor enum ["a", "b"]`

	fields, diagnostics := Parse(doc)

	assert.Empty(t, diagnostics)
	require.Len(t, fields, 2)

	assert.Equal(t, "options", fields[0].Key)
	assert.Equal(t, map[string]any{"grid_columns": float64(4), "hidden": false}, fields[0].Value)

	assert.Equal(t, "enum", fields[1].Key)
	assert.Equal(t, []any{"a", "b"}, fields[1].Value)
}

func TestParse_MalformedJSONKeepsRawString(t *testing.T) {
	fields, diagnostics := Parse(`@editor options {"grid_columns": }`)

	require.Len(t, fields, 1)
	assert.Equal(t, `{"grid_columns": }`, fields[0].Value)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, 1, diagnostics[0].Line)
	assert.Contains(t, diagnostics[0].Error(), "invalid JSON value")
}

func TestParse_CommentDecoration(t *testing.T) {
	doc := `/**
 * Colors for the product.
 * @editor title Colour
 * @editor propertyOrder 3
 */`

	fields, diagnostics := Parse(doc)

	assert.Empty(t, diagnostics)
	assert.Equal(t, []Field{
		{Key: "title", Value: "Colour"},
		{Key: "propertyOrder", Value: "3"},
	}, fields)
}

func TestParse_GoLineComments(t *testing.T) {
	doc := "// detailActionParamColor lists colors.\n// @editor type integer\n"

	fields, diagnostics := Parse(doc)

	assert.Empty(t, diagnostics)
	assert.Equal(t, []Field{{Key: "type", Value: "integer"}}, fields)
}

func TestParse_IgnoresUnrelatedLines(t *testing.T) {
	doc := `@editorial note about this
@param string $color
plain text mentioning @editor in the middle`

	fields, diagnostics := Parse(doc)

	assert.Empty(t, fields)
	assert.Empty(t, diagnostics)
}

func TestParse_ReportsUnusableAnnotations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{name: "missing value", doc: "@editor description", line: 1},
		{name: "missing key", doc: "text\n@editor {\"a\": 1}", line: 2},
		{name: "blank value", doc: "@editor title    ", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, diagnostics := Parse(tt.doc)

			assert.Empty(t, fields)
			require.Len(t, diagnostics, 1)
			assert.Equal(t, tt.line, diagnostics[0].Line)
		})
	}
}

func TestParse_LaterFieldsKeepOrder(t *testing.T) {
	fields, _ := Parse("@editor title First\n@editor title Second")

	require.Len(t, fields, 2)
	assert.Equal(t, "First", fields[0].Value)
	assert.Equal(t, "Second", fields[1].Value)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
		wantErr  bool
	}{
		{name: "plain", input: "  hello world ", expected: "hello world"},
		{name: "object", input: `{"a":1}`, expected: map[string]any{"a": float64(1)}},
		{name: "array", input: `[1,2]`, expected: []any{float64(1), float64(2)}},
		{name: "mismatched", input: `{1,2]`, expected: `{1,2]`},
		{name: "broken object", input: `{oops}`, expected: `{oops}`, wantErr: true},
		{name: "number stays string", input: "42", expected: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := DecodeValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestLooksLikeJSON(t *testing.T) {
	assert.True(t, LooksLikeJSON("{}"))
	assert.True(t, LooksLikeJSON("[1]"))
	assert.False(t, LooksLikeJSON("{"))
	assert.False(t, LooksLikeJSON("[}"))
	assert.False(t, LooksLikeJSON("text"))
	assert.False(t, LooksLikeJSON(""))
}
