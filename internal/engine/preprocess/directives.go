// Package preprocess rewrites source fragments before they reach the compilation engine.
// Tokens are recognised with the Go scanner, so text inside string literals and block
// comments is never mistaken for a directive or an import.
package preprocess

import (
	"go/scanner"
	"go/token"
	"iter"
	"strconv"
	"strings"
)

// DirectivePrefix starts a reference directive comment: //fuse:ref "name".
const DirectivePrefix = "//fuse:ref"

// StripDirectives removes every line that holds only a reference directive and returns the
// remaining source with the referenced names in order of appearance.
// A removed line is left empty so line numbers do not shift.
func StripDirectives(src string) (string, []string) {
	var (
		names []string
		out   strings.Builder
		last  int
	)

	for tok := range tokens(src) {
		if tok.kind != token.COMMENT || !startsLine(src, tok.offset) {
			continue
		}
		name, ok := parseDirective(tok.lit)
		if !ok {
			continue
		}

		names = append(names, name)
		start := lineStart(src, tok.offset)
		end := lineEnd(src, tok.offset)
		out.WriteString(src[last:start])
		last = end
	}

	if names == nil {
		return src, nil
	}
	out.WriteString(src[last:])
	return out.String(), names
}

// parseDirective decodes the quoted name of a directive comment.
func parseDirective(comment string) (string, bool) {
	rest, ok := strings.CutPrefix(comment, DirectivePrefix)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	name, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// scanned is one token with its byte offset in the source.
type scanned struct {
	kind   token.Token
	lit    string
	offset int
}

// tokens yields the tokens of src, comments included. Scan errors are ignored:
// fragments are often not complete files.
func tokens(src string) iter.Seq[scanned] {
	return func(yield func(scanned) bool) {
		fset := token.NewFileSet()
		file := fset.AddFile("", fset.Base(), len(src))

		var s scanner.Scanner
		s.Init(file, []byte(src), nil, scanner.ScanComments)
		for {
			pos, kind, lit := s.Scan()
			if kind == token.EOF {
				return
			}
			if !yield(scanned{kind: kind, lit: lit, offset: file.Offset(pos)}) {
				return
			}
		}
	}
}

func lineStart(src string, offset int) int {
	return strings.LastIndexByte(src[:offset], '\n') + 1
}

// lineEnd returns the offset of the newline ending the line at offset, or len(src).
func lineEnd(src string, offset int) int {
	if i := strings.IndexByte(src[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(src)
}

func startsLine(src string, offset int) bool {
	return strings.TrimSpace(src[lineStart(src, offset):offset]) == ""
}
