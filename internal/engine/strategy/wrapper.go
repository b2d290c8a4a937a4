package strategy

import (
	"strings"

	"go.trai.ch/fuse/internal/engine/preprocess"
)

// ExpressionSource synthesizes the file compiled by the expression attempt.
// The fragment's leading imports are lifted to file scope; the rest must be an expression
// assignable to func(context.Context, any) (any, error).
func ExpressionSource(p Plan) string {
	expr, imports := preprocess.ExtractImports(p.Source)
	typeName := entryTypeName(p.TypeName)

	var sb strings.Builder
	sb.WriteString("package main\n\n")

	for _, decl := range imports.Decls {
		sb.WriteString(decl)
		sb.WriteString("\n")
	}
	if !imports.HasUnaliased("context") {
		sb.WriteString("import \"context\"\n")
	}

	sb.WriteString("\ntype " + typeName + " struct{}\n\n")
	sb.WriteString("func (" + typeName + ") " + p.MethodName + "(ctx context.Context, input any) (any, error) {\n")
	sb.WriteString("\tvar fn func(context.Context, any) (any, error) =\n")
	if marker := p.lineMarker(); marker != "" {
		sb.WriteString(marker + "\n")
	}
	sb.WriteString(strings.TrimRight(expr, " \t\r\n"))
	sb.WriteString("\n\treturn fn(ctx, input)\n}\n")
	return sb.String()
}
