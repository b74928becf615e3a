package editor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{MetadataNotFoundCode, "MetadataNotFound"},
		{OverrideEncodingCode, "OverrideEncodingError"},
		{SchemaEncodingCode, "SchemaEncodingError"},
		{AnnotationParseCode, "AnnotationParseError"},
		{RegistrationCode, "RegistrationError"},
		{ConfigurationCode, "ConfigurationError"},
		{UnknownErrorCode, "UnknownError"},
		{ErrorCode(99), "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestError_Message(t *testing.T) {
	err := NewError(MetadataNotFoundCode, "no action").
		WithContext("method", "actionView").
		WithContext("controller", "product")
	assert.Equal(t, "no action (controller=product, method=actionView)", err.Error())

	err = Errorf(OverrideEncodingCode, "bad %s", "override").WithCause(errors.New("boom"))
	assert.Equal(t, "bad override: boom", err.Error())
}

func TestError_IsMatchesCode(t *testing.T) {
	err := Errorf(MetadataNotFoundCode, "no action %q", "view")
	wrapped := fmt.Errorf("rendering: %w", err)

	assert.True(t, errors.Is(wrapped, ErrMetadataNotFound))
	assert.False(t, errors.Is(wrapped, ErrRegistration))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ConfigurationCode, "invalid").WithCause(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))

	var target *Error
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &target))
	assert.Equal(t, ConfigurationCode, target.Code)
}
