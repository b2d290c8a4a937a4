package golang

// SetIDGenerator replaces the unit id generator for testing.
func (c *Compiler) SetIDGenerator(newID func() string) {
	c.newID = newID
}

// ParseDiagnostics exposes parseDiagnostics for testing.
var ParseDiagnostics = parseDiagnostics

// RenderExports exposes renderExports for testing.
var RenderExports = renderExports
