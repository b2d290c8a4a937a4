package domain

import "strings"

const (
	libraryLabel    = "library form:"
	expressionLabel = "expression form:"
)

// CompilationError carries the diagnostics of both compile attempts.
type CompilationError struct {
	Library    []Diagnostic
	Expression []Diagnostic
}

// Error renders both diagnostic lists verbatim, each under its attempt label.
func (e *CompilationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrCompilationFailed.Error())
	writeSection(&sb, libraryLabel, e.Library)
	writeSection(&sb, expressionLabel, e.Expression)
	return sb.String()
}

// Unwrap exposes ErrCompilationFailed to errors.Is.
func (e *CompilationError) Unwrap() error {
	return ErrCompilationFailed
}

func writeSection(sb *strings.Builder, label string, diags []Diagnostic) {
	sb.WriteString("\n")
	sb.WriteString(label)
	if len(diags) == 0 {
		sb.WriteString(" (no diagnostics)")
		return
	}
	sb.WriteString("\n")
	sb.WriteString(FormatDiagnostics(diags, "  "))
}
