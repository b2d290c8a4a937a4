// Package strategy compiles a fragment as a complete unit and, failing that,
// as an expression wrapped in a synthesized entry type.
package strategy

import (
	"fmt"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
)

const (
	// LibraryFileName is the file the fragment is compiled as in the library attempt.
	LibraryFileName = "unit.go"
	// ExpressionFileName is the file holding the synthesized wrapper in the expression attempt.
	ExpressionFileName = "unit_expr.go"
)

// Origin locates the fragment in the file it came from.
type Origin struct {
	File string
	Line int
}

// Plan is everything the selector needs for both attempts.
type Plan struct {
	// Source is the fragment with reference directives already stripped.
	Source string

	TypeName   string
	MethodName string

	// References are resolved: every Path is set.
	References []domain.ReferenceSpec

	Origin Origin

	// Debug requests unoptimized builds and //line markers.
	Debug bool
}

// lineMarker returns the //line directive mapping the next line to the plan's origin,
// or "" when no marker applies.
func (p Plan) lineMarker() string {
	if !p.Debug || p.Origin.File == "" {
		return ""
	}
	return fmt.Sprintf("//line %s:%d", p.Origin.File, max(p.Origin.Line, 1))
}

// LibrarySource returns the file compiled by the library attempt.
func LibrarySource(p Plan) string {
	marker := p.lineMarker()
	if marker == "" {
		return p.Source
	}
	return marker + "\n" + p.Source
}

// entryTypeName strips the package qualifier a caller may put on the type name.
func entryTypeName(typeName string) string {
	return strings.TrimPrefix(typeName, "main.")
}
