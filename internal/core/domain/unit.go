package domain

import (
	"fmt"
	"strings"
)

// Severity classifies a compiler diagnostic.
type Severity string

const (
	// SeverityError marks a diagnostic that prevents the unit from building.
	SeverityError Severity = "error"
	// SeverityWarning marks a diagnostic that does not prevent the unit from building.
	SeverityWarning Severity = "warning"
)

// Diagnostic is one message reported by the compilation engine.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	File     string
	Line     int
	Column   int
}

// String renders the diagnostic the way the Go toolchain prints positions.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&sb, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&sb, ":%d", d.Column)
			}
		}
		sb.WriteString(": ")
	}
	sb.WriteString(string(d.Severity))
	if d.Code != "" {
		fmt.Fprintf(&sb, " %s", d.Code)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}

// SourceFile is one file handed to the compilation engine.
type SourceFile struct {
	Name    string
	Content string
}

// CompileInput is everything the compilation engine needs for one attempt.
type CompileInput struct {
	// Files holds the unit's Go sources, all in package main.
	Files []SourceFile

	// References holds the resolved module zips the unit may import.
	References []ReferenceSpec

	// Debug disables optimizations so the unit can be stepped through.
	Debug bool
}

// CompiledUnit is the result of one compile attempt.
type CompiledUnit struct {
	// ID uniquely identifies the unit; it is also part of the unit's module path.
	ID string

	// Image holds the loadable binary on success.
	Image []byte

	// Success reports whether Image is usable.
	Success bool

	// Diagnostics lists every message produced, in engine order.
	Diagnostics []Diagnostic
}

// FormatDiagnostics renders diagnostics one per line, each indented by the given prefix.
func FormatDiagnostics(diags []Diagnostic, indent string) string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, indent+d.String())
	}
	return strings.Join(lines, "\n")
}
