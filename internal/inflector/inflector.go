// Package inflector converts between route segments, identifiers and
// human-readable labels.
package inflector

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowercaseFirstLetter lowercases the first rune of s
func LowercaseFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

// UppercaseFirstLetter uppercases the first rune of s
func UppercaseFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToTitle(r[0])

	return string(r)
}

// Camelize joins the alphanumeric runs of s, uppercasing the first letter of each.
//
//	product-detail	=> ProductDetail
//	get_items		=> GetItems
//	detail			=> Detail
func Camelize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	b.Grow(len(s))
	for _, word := range words {
		b.WriteString(UppercaseFirstLetter(word))
	}

	return b.String()
}

// SplitWords splits an identifier into words at camel-case boundaries and at
// '-', '_', '.' and whitespace. A run of capitals is kept together unless its
// last capital starts a lowercase word (HTMLParser => HTML, Parser).
func SplitWords(s string) []string {
	runes := []rune(s)
	words := make([]string, 0, 4)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush(i)
				start = i
			}
		}
	}
	flush(len(runes))

	return words
}

// CamelToWords turns an identifier into a title-cased label.
//
//	productId	=> Product Id
//	page_size	=> Page Size
//	HTMLParser	=> Html Parser
func CamelToWords(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}

	label := strings.ToLower(strings.Join(words, " "))

	// cases.Caser keeps state between calls and must not be shared.
	return cases.Title(language.English).String(label)
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}
