package editor

import (
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
)

// TranslationCategory is the message category used for generator labels
const TranslationCategory = "editor"

// RequestParamsMessage is the source message of the schema title
const RequestParamsMessage = "Request Params"

// Translator maps a (category, message) pair to a localized string
type Translator interface {
	Translate(category, message string) string
}

// TranslatorFunc adapts a plain function to Translator
type TranslatorFunc func(category, message string) string

// Translate calls f
func (f TranslatorFunc) Translate(category, message string) string {
	return f(category, message)
}

// NopTranslator returns every message unchanged
type NopTranslator struct{}

// Translate returns message
func (NopTranslator) Translate(_, message string) string {
	return message
}

type catalogKey struct {
	category string
	message  string
}

var builtinCatalog = map[string]map[string]string{
	"en": {RequestParamsMessage: "Request Params"},
	"zh": {RequestParamsMessage: "请求参数"},
	"de": {RequestParamsMessage: "Anfrageparameter"},
}

// UniversalTranslator is a Translator backed by go-playground's
// universal-translator. Unknown locales fall back to English and unknown
// messages are returned unchanged.
type UniversalTranslator struct {
	trans ut.Translator
}

// NewTranslator creates a translator for locale ("en", "zh" or "de") with
// the built-in catalog loaded
func NewTranslator(locale string) *UniversalTranslator {
	fallback := en.New()
	uni := ut.New(fallback, fallback, zh.New(), de.New())

	trans, _ := uni.GetTranslator(locale)
	t := &UniversalTranslator{trans: trans}

	for message, translation := range builtinCatalog[baseLocale(trans)] {
		_ = t.Add(TranslationCategory, message, translation)
	}

	return t
}

// Locale returns the locale the translator resolved to
func (t *UniversalTranslator) Locale() string {
	return t.trans.Locale()
}

// Add registers or replaces a translation. It is not safe to call
// concurrently with Translate.
func (t *UniversalTranslator) Add(category, message, translation string) error {
	return t.trans.Add(catalogKey{category: category, message: message}, translation, true)
}

// Translate returns the translation of message, or message itself
func (t *UniversalTranslator) Translate(category, message string) string {
	translated, err := t.trans.T(catalogKey{category: category, message: message})
	if err != nil || translated == "" {
		return message
	}
	return translated
}

func baseLocale(trans locales.Translator) string {
	locale := trans.Locale()
	for i, r := range locale {
		if r == '_' || r == '-' {
			return locale[:i]
		}
	}
	return locale
}
