package plugin

// SymbolTable exposes symbolTable for testing.
type SymbolTable = symbolTable

// SetOpener replaces the plugin opener for testing.
func (l *Loader) SetOpener(open func(path string) (SymbolTable, error)) {
	l.open = open
}
