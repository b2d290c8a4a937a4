package preprocess

import (
	"go/token"
	"iter"
	"strconv"
	"strings"
)

// ImportSpec is one imported package.
type ImportSpec struct {
	// Name is the explicit package name, "." or "_"; empty when the import is unaliased.
	Name string
	Path string
}

// Imports holds the import declarations lifted off the front of a fragment.
type Imports struct {
	// Decls holds the exact text of each declaration, in source order.
	Decls []string
	Specs []ImportSpec
}

// HasUnaliased reports whether path is imported under its own package name.
func (im Imports) HasUnaliased(path string) bool {
	for _, spec := range im.Specs {
		if spec.Path == path && (spec.Name == "" || spec.Name == pathBase(path)) {
			return true
		}
	}
	return false
}

// ExtractImports removes the leading import declarations of src.
// Each removed declaration is replaced by as many newlines as it spanned,
// so the remaining text keeps its line numbers. Extraction stops at the first
// token that is not part of a well-formed import declaration.
func ExtractImports(src string) (string, Imports) {
	var (
		imports Imports
		out     strings.Builder
		last    int
	)

	next, stop := iter.Pull(tokens(src))
	defer stop()

	tok, ok := next()
	for ok {
		switch {
		case tok.kind == token.COMMENT, tok.kind == token.SEMICOLON:
			tok, ok = next()
			continue
		case tok.kind != token.IMPORT:
			ok = false
			continue
		}

		start := tok.offset
		specs, end, after, parsed := parseImportDecl(next)
		if !parsed {
			break
		}

		decl := src[start:end]
		imports.Decls = append(imports.Decls, decl)
		imports.Specs = append(imports.Specs, specs...)
		out.WriteString(src[last:start])
		out.WriteString(strings.Repeat("\n", strings.Count(decl, "\n")))
		last = end

		tok, ok = after.tok, after.ok
	}

	if imports.Decls == nil {
		return src, imports
	}
	out.WriteString(src[last:])
	return out.String(), imports
}

// lookahead is the token read past the end of a declaration.
type lookahead struct {
	tok scanned
	ok  bool
}

// parseImportDecl reads the rest of an import declaration after the import keyword.
// It returns the specs, the end offset of the declaration and the token following it.
func parseImportDecl(next func() (scanned, bool)) ([]ImportSpec, int, lookahead, bool) {
	tok, ok := next()
	if !ok {
		return nil, 0, lookahead{}, false
	}

	if tok.kind != token.LPAREN {
		spec, end, parsed := parseImportSpec(tok, next)
		if !parsed {
			return nil, 0, lookahead{}, false
		}
		tok, ok = next()
		return []ImportSpec{spec}, end, lookahead{tok: tok, ok: ok}, true
	}

	var specs []ImportSpec
	for {
		tok, ok = next()
		if !ok {
			return nil, 0, lookahead{}, false
		}
		switch tok.kind {
		case token.COMMENT, token.SEMICOLON:
			continue
		case token.RPAREN:
			end := tok.offset + 1
			tok, ok = next()
			return specs, end, lookahead{tok: tok, ok: ok}, true
		}

		spec, _, parsed := parseImportSpec(tok, next)
		if !parsed {
			return nil, 0, lookahead{}, false
		}
		specs = append(specs, spec)
	}
}

// parseImportSpec reads `[name] "path"` starting at tok.
func parseImportSpec(tok scanned, next func() (scanned, bool)) (ImportSpec, int, bool) {
	var spec ImportSpec
	switch tok.kind {
	case token.IDENT:
		spec.Name = tok.lit
	case token.PERIOD:
		spec.Name = "."
	}
	if spec.Name != "" {
		var ok bool
		if tok, ok = next(); !ok {
			return ImportSpec{}, 0, false
		}
	}

	if tok.kind != token.STRING {
		return ImportSpec{}, 0, false
	}
	path, err := strconv.Unquote(tok.lit)
	if err != nil || path == "" {
		return ImportSpec{}, 0, false
	}
	spec.Path = path
	return spec, tok.offset + len(tok.lit), true
}

func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
