package domain

// Outcome is the tagged result of the two-form compile.
// It is one of LibraryForm, ExpressionForm or BothFailed.
type Outcome interface {
	isOutcome()
}

// LibraryForm is the outcome when the fragment compiled as a complete unit.
type LibraryForm struct {
	Unit *CompiledUnit
}

// ExpressionForm is the outcome when the fragment compiled only as a wrapped expression.
type ExpressionForm struct {
	Unit *CompiledUnit

	// LibraryDiagnostics keeps what the failed library attempt reported.
	LibraryDiagnostics []Diagnostic
}

// BothFailed is the outcome when neither form compiled.
type BothFailed struct {
	Library    []Diagnostic
	Expression []Diagnostic
}

func (LibraryForm) isOutcome()    {}
func (ExpressionForm) isOutcome() {}
func (BothFailed) isOutcome()     {}

// Err converts the failure into the error reported to callers.
func (b BothFailed) Err() error {
	return &CompilationError{Library: b.Library, Expression: b.Expression}
}
