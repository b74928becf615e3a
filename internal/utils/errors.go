package utils

import "fmt"

// Common error wrapping patterns so messages stay consistent across packages.

// WrapRegisterError wraps an error with a "failed to register" message
func WrapRegisterError(name string, err error) error {
	return fmt.Errorf("failed to register %s: %w", name, err)
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, err error) error {
	return fmt.Errorf("failed to parse %s: %w", item, err)
}

// WrapLoadError wraps an error with a "failed to load" message
func WrapLoadError(item string, err error) error {
	return fmt.Errorf("failed to load %s: %w", item, err)
}

// WrapValidateError wraps an error with a "failed to validate" message
func WrapValidateError(item string, err error) error {
	return fmt.Errorf("failed to validate %s: %w", item, err)
}

// WrapEncodeError wraps an error with a "failed to encode" message
func WrapEncodeError(item string, err error) error {
	return fmt.Errorf("failed to encode %s: %w", item, err)
}
