// Package annotations parses `@editor <key> <value>` doc comment annotations
// into ordered editor fields.
package annotations

import "fmt"

// Field is a single editor field taken from an annotation
type Field struct {
	Key   string
	Value any
}

// Diagnostic describes an annotation line that could not be used as written
type Diagnostic struct {
	Line int    // 1-based line within the doc text
	Text string // the annotation line without comment markers
	Err  error
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %v", d.Line, d.Err)
}

// Unwrap returns the underlying cause
func (d Diagnostic) Unwrap() error {
	return d.Err
}
