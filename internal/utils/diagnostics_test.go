package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticSystem_Levels(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriterDiagnostics(DiagnosticWarn, &buf)

	d.Debug("debug %d", 1)
	d.Info("info %d", 2)
	d.Warn("warn %d", 3)
	d.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestDiagnosticSystem_Silent(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriterDiagnostics(DiagnosticSilent, &buf)

	d.Error("nothing")
	d.Section("nothing")
	d.Summary("nothing", map[string]any{"a": 1})

	assert.Empty(t, buf.String())
}

func TestDiagnosticSystem_SummarySorted(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriterDiagnostics(DiagnosticInfo, &buf)

	d.Summary("Done", map[string]any{"b": 2, "a": 1})

	assert.Equal(t, "\nDone\n   a: 1\n   b: 2\n", buf.String())
}

func TestDiagnosticSystem_ListAndSection(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriterDiagnostics(DiagnosticInfo, &buf)

	d.Section("Actions")
	d.List("%s (%d params)", "detail", 2)

	assert.Equal(t, "Actions\n- detail (2 params)\n", buf.String())
}
