package golang

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"slices"

	"go.trai.ch/fuse/internal/core/domain"
)

const (
	codeSyntax  = "syntax"
	codePackage = "package"
)

// inspectSources parses files and returns the names of the top-level types to export.
// Parse problems are returned as diagnostics instead.
func inspectSources(files []domain.SourceFile) ([]string, []domain.Diagnostic) {
	fset := token.NewFileSet()
	var (
		names []string
		diags []domain.Diagnostic
	)

	for _, f := range files {
		file, err := parser.ParseFile(fset, f.Name, f.Content, parser.AllErrors|parser.SkipObjectResolution)
		if err != nil {
			diags = append(diags, syntaxDiagnostics(f.Name, err)...)
			continue
		}

		if file.Name.Name != "main" {
			pos := fset.Position(file.Name.Pos())
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     codePackage,
				Message:  "package " + file.Name.Name + " must be main",
				File:     pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			})
			continue
		}

		names = append(names, exportableTypes(file)...)
	}

	slices.Sort(names)
	return slices.Compact(names), diags
}

// exportableTypes lists the file's top-level non-generic type names.
func exportableTypes(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.TypeParams != nil || ts.Name.Name == "_" {
				continue
			}
			names = append(names, ts.Name.Name)
		}
	}
	return names
}

func syntaxDiagnostics(name string, err error) []domain.Diagnostic {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Code:     codeSyntax,
			Message:  err.Error(),
			File:     name,
		}}
	}

	diags := make([]domain.Diagnostic, 0, len(list))
	for _, e := range list {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Code:     codeSyntax,
			Message:  e.Msg,
			File:     e.Pos.Filename,
			Line:     e.Pos.Line,
			Column:   e.Pos.Column,
		})
	}
	return diags
}
