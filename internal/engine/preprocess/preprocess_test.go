package preprocess_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fuse/internal/engine/preprocess"
)

func TestStripDirectives(t *testing.T) {
	src := "//fuse:ref \"example.com/strutil\"\n" +
		"package main\n" +
		"\t//fuse:ref `local/lib.zip`\n" +
		"var s = \"//fuse:ref \\\"not-a-directive\\\"\"\n" +
		"var x = 1 //fuse:ref \"trailing\"\n" +
		"/*\n//fuse:ref \"in-block\"\n*/\n" +
		"//fuse:reference \"other\"\n" +
		"//fuse:ref \"\"\n"

	out, names := preprocess.StripDirectives(src)

	assert.Equal(t, []string{"example.com/strutil", "local/lib.zip"}, names)
	assert.Equal(t, "\n"+
		"package main\n"+
		"\n"+
		"var s = \"//fuse:ref \\\"not-a-directive\\\"\"\n"+
		"var x = 1 //fuse:ref \"trailing\"\n"+
		"/*\n//fuse:ref \"in-block\"\n*/\n"+
		"//fuse:reference \"other\"\n"+
		"//fuse:ref \"\"\n", out)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
}

func TestStripDirectives_NoDirectives(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"

	out, names := preprocess.StripDirectives(src)
	assert.Equal(t, src, out)
	assert.Nil(t, names)
}

func TestStripDirectives_LastLineWithoutNewline(t *testing.T) {
	out, names := preprocess.StripDirectives("package main\n//fuse:ref \"a\"")
	assert.Equal(t, []string{"a"}, names)
	assert.Equal(t, "package main\n", out)
}

func TestExtractImports(t *testing.T) {
	src := "import \"strings\"\n" +
		"import (\n" +
		"\t// formatting\n" +
		"\tf \"fmt\"\n" +
		"\t. \"math\"\n" +
		"\t_ \"embed\"\n" +
		")\n" +
		"\n" +
		"func(ctx context.Context, in any) (any, error) {\n" +
		"\treturn strings.ToUpper(f.Sprint(in)), nil\n" +
		"}\n"

	out, imports := preprocess.ExtractImports(src)

	assert.Equal(t, []string{
		"import \"strings\"",
		"import (\n\t// formatting\n\tf \"fmt\"\n\t. \"math\"\n\t_ \"embed\"\n)",
	}, imports.Decls)
	assert.Equal(t, []preprocess.ImportSpec{
		{Path: "strings"},
		{Name: "f", Path: "fmt"},
		{Name: ".", Path: "math"},
		{Name: "_", Path: "embed"},
	}, imports.Specs)

	assert.Equal(t, "\n\n\n\n\n\n\n\n"+
		"func(ctx context.Context, in any) (any, error) {\n"+
		"\treturn strings.ToUpper(f.Sprint(in)), nil\n"+
		"}\n", out)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
}

func TestExtractImports_StopsAtFirstNonImport(t *testing.T) {
	src := "// leading comment\n" +
		"func(ctx context.Context, in any) (any, error) { return in, nil }\n" +
		"import \"strings\"\n"

	out, imports := preprocess.ExtractImports(src)
	assert.Equal(t, src, out)
	assert.Empty(t, imports.Decls)
}

func TestExtractImports_Malformed(t *testing.T) {
	src := "import (\n\t\"strings\"\n"

	out, imports := preprocess.ExtractImports(src)
	assert.Equal(t, src, out)
	assert.Empty(t, imports.Specs)
}

func TestExtractImports_IgnoresImportsInStrings(t *testing.T) {
	src := "func(ctx context.Context, in any) (any, error) { return `import \"os\"`, nil }\n"

	out, imports := preprocess.ExtractImports(src)
	assert.Equal(t, src, out)
	assert.Empty(t, imports.Decls)
}

func TestImports_HasUnaliased(t *testing.T) {
	imports := preprocess.Imports{Specs: []preprocess.ImportSpec{
		{Name: "ctx", Path: "context"},
		{Path: "strings"},
		{Name: "json", Path: "encoding/json"},
	}}

	assert.False(t, imports.HasUnaliased("context"))
	assert.True(t, imports.HasUnaliased("strings"))
	assert.True(t, imports.HasUnaliased("encoding/json"))
	assert.False(t, imports.HasUnaliased("fmt"))
}
