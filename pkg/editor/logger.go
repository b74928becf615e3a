package editor

import "github.com/toyz/editorschema/internal/utils"

// Logger receives diagnostics from the generator and the registry.
// *utils.DiagnosticSystem implements it.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// DefaultLogger returns a logger that prints warnings and errors to stderr
func DefaultLogger() Logger {
	return utils.NewDiagnosticSystem(utils.DiagnosticWarn)
}
