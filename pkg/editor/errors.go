package editor

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	MetadataNotFoundCode
	OverrideEncodingCode
	SchemaEncodingCode
	AnnotationParseCode
	RegistrationCode
	ConfigurationCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case MetadataNotFoundCode:
		return "MetadataNotFound"
	case OverrideEncodingCode:
		return "OverrideEncodingError"
	case SchemaEncodingCode:
		return "SchemaEncodingError"
	case AnnotationParseCode:
		return "AnnotationParseError"
	case RegistrationCode:
		return "RegistrationError"
	case ConfigurationCode:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// Error is the error type returned by this package. Two errors match under
// errors.Is when their codes are equal.
type Error struct {
	Code        ErrorCode
	Message     string
	Cause       error
	ContextData map[string]any
}

// Sentinels for errors.Is checks
var (
	ErrMetadataNotFound = &Error{Code: MetadataNotFoundCode, Message: "action metadata not found"}
	ErrOverrideEncoding = &Error{Code: OverrideEncodingCode, Message: "schema override could not be encoded"}
	ErrSchemaEncoding   = &Error{Code: SchemaEncodingCode, Message: "schema could not be encoded"}
	ErrAnnotationParse  = &Error{Code: AnnotationParseCode, Message: "editor annotation could not be parsed"}
	ErrRegistration     = &Error{Code: RegistrationCode, Message: "action could not be registered"}
	ErrConfiguration    = &Error{Code: ConfigurationCode, Message: "invalid configuration"}
)

// NewError creates a new Error with the given code and message
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates a new Error with a formatted message
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.ContextData) > 0 {
		keys := make([]string, 0, len(e.ContextData))
		for key := range e.ContextData {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", key, e.ContextData[key])
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithCause adds an underlying error cause
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.ContextData == nil {
		e.ContextData = make(map[string]any)
	}
	e.ContextData[key] = value
	return e
}
