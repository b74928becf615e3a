package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	jsoniter "github.com/json-iterator/go"
)

// EditorTag is the doc comment tag that carries editor fields
const EditorTag = "@editor"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parser reads `@editor <key> <value>` lines out of doc comment text
type Parser struct {
	parser *participle.Parser[editorLine]
}

// editorLine is a single `@editor` annotation. Whitespace is significant so
// that the value keeps its original spacing.
type editorLine struct {
	Key   string   `parser:"Tag Whitespace @Ident"`
	Value []string `parser:"(Whitespace @(Tag | Ident | Whitespace | Other)*)?"`
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tag", Pattern: `@editor\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `[^\sa-zA-Z_]+`},
	})

	return &Parser{
		parser: participle.MustBuild[editorLine](
			participle.Lexer(lex),
			participle.UseLookahead(2),
		),
	}
}

var defaultParser = NewParser()

// Parse extracts editor fields from doc using the package parser
func Parse(doc string) ([]Field, []Diagnostic) {
	return defaultParser.Parse(doc)
}

// Parse extracts editor fields from doc, in the order they appear. Lines that
// are not annotations are ignored; annotations that cannot be used are
// reported as diagnostics and skipped. A value whose embedded JSON is
// malformed is kept as the raw string and also reported.
func (p *Parser) Parse(doc string) ([]Field, []Diagnostic) {
	var fields []Field
	var diagnostics []Diagnostic

	for i, raw := range strings.Split(doc, "\n") {
		line := stripDecoration(raw)
		if !isEditorLine(line) {
			continue
		}

		parsed, err := p.parser.ParseString("", line)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Line: i + 1,
				Text: line,
				Err:  fmt.Errorf("malformed annotation: %w", err),
			})
			continue
		}

		value := strings.TrimSpace(strings.Join(parsed.Value, ""))
		if value == "" {
			diagnostics = append(diagnostics, Diagnostic{
				Line: i + 1,
				Text: line,
				Err:  fmt.Errorf("annotation %q has no value", parsed.Key),
			})
			continue
		}

		decoded, err := DecodeValue(value)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Line: i + 1, Text: line, Err: err})
		}

		fields = append(fields, Field{Key: parsed.Key, Value: decoded})
	}

	return fields, diagnostics
}

// DecodeValue parses value as JSON when it is wrapped in {} or [], otherwise
// it is returned unchanged. On a JSON error the trimmed string is returned
// together with the error.
func DecodeValue(value string) (any, error) {
	value = strings.TrimSpace(value)
	if !LooksLikeJSON(value) {
		return value, nil
	}

	var decoded any
	if err := json.UnmarshalFromString(value, &decoded); err != nil {
		return value, fmt.Errorf("invalid JSON value %q: %w", value, err)
	}

	return decoded, nil
}

// LooksLikeJSON reports whether s is wrapped in a matching pair of braces or brackets
func LooksLikeJSON(s string) bool {
	if len(s) < 2 {
		return false
	}

	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// isEditorLine reports whether line starts with the editor tag as a whole word
func isEditorLine(line string) bool {
	if !strings.HasPrefix(line, EditorTag) {
		return false
	}

	rest := line[len(EditorTag):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// stripDecoration removes comment markers around a doc line
func stripDecoration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, "*/")

	for _, prefix := range []string{"/**", "/*", "//", "*"} {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimPrefix(line, prefix)
			break
		}
	}

	return strings.TrimSpace(line)
}
