package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides leveled, optionally colored output. It satisfies
// editor.Logger so the generator can report through it.
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	mu        sync.Mutex
}

// NewDiagnosticSystem creates a new diagnostic system writing to stdout/stderr
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewWriterDiagnostics creates a diagnostic system that writes every level to w without colors
func NewWriterDiagnostics(level DiagnosticLevel, w io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:    level,
		output:   w,
		errorOut: w,
	}
}

var levelColors = map[string]*color.Color{
	"ERROR":   color.New(color.FgRed, color.Bold),
	"WARN":    color.New(color.FgYellow),
	"INFO":    color.New(color.FgBlue),
	"SUCCESS": color.New(color.FgGreen),
	"VERBOSE": color.New(color.FgHiBlack),
	"DEBUG":   color.New(color.FgMagenta),
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...any) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...any) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.errorOut, "WARN", format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...any) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...any) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", format, args...)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		d.print(d.output, d.paint(color.New(color.FgCyan, color.Bold), title)+"\n")
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		d.print(d.output, "- "+fmt.Sprintf(format, args...)+"\n")
	}
}

// Summary outputs a final summary with statistics, keys sorted
func (d *DiagnosticSystem) Summary(title string, stats map[string]any) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n" + title + "\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "   %s: %v\n", key, stats[key])
	}
	d.print(d.output, b.String())
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level, format string, args ...any) {
	var output strings.Builder

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	label := "[" + level + "]"
	output.WriteString(d.paint(levelColors[level], label))
	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))
	output.WriteString("\n")

	d.print(writer, output.String())
}

func (d *DiagnosticSystem) paint(c *color.Color, s string) string {
	if !d.useColors || c == nil {
		return s
	}
	return c.Sprint(s)
}

func (d *DiagnosticSystem) print(writer io.Writer, s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprint(writer, s)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	return !color.NoColor
}
