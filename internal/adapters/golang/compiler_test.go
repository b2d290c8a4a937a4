package golang_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/golang"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"golang.org/x/mod/modfile"
)

const librarySource = `package main

type Startup struct{}

func (Startup) Invoke(s string) (string, error) { return s + "!", nil }

type Box[T any] struct{ v T }
`

type fixture struct {
	compiler *golang.Compiler
	executor *mocks.MockExecutor
	workDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	workDir := t.TempDir()
	compiler := golang.NewCompiler(&domain.Settings{
		WorkDir:    workDir,
		GoBinary:   "go",
		BuildFlags: []string{"-tags=fuse"},
	}, executor, logger)
	compiler.SetIDGenerator(func() string { return "utest" })

	return &fixture{compiler: compiler, executor: executor, workDir: workDir}
}

func writeModuleZip(t *testing.T, dir, prefix string) string {
	t.Helper()
	p := filepath.Join(dir, "strutil.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		prefix + "/go.mod":     "module example.com/strutil\n\ngo 1.21\n",
		prefix + "/strutil.go": "package strutil\n\nfunc Upper(s string) string { return s }\n",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestCompile_Success(t *testing.T) {
	fx := newFixture(t)
	zipPath := writeModuleZip(t, t.TempDir(), "example.com/strutil@v1.0.0")

	fx.executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) (domain.CommandResult, error) {
			assert.Equal(t, filepath.Join(fx.workDir, "utest"), cmd.Dir)
			assert.Equal(t, "go", cmd.Name)
			assert.Equal(t, []string{"build", "-buildmode=plugin", "-tags=fuse", "-o", "unit.so", "."}, cmd.Args)
			assert.Equal(t, "1", cmd.Env["CGO_ENABLED"])
			assert.Equal(t, "local", cmd.Env["GOTOOLCHAIN"])

			src, err := os.ReadFile(filepath.Join(cmd.Dir, "unit.go"))
			require.NoError(t, err)
			assert.Equal(t, librarySource, string(src))

			exports, err := os.ReadFile(filepath.Join(cmd.Dir, "zz_fuse_exports.go"))
			require.NoError(t, err)
			assert.Contains(t, string(exports), `"Startup": fusereflect.TypeFor[Startup](),`)
			assert.NotContains(t, string(exports), "Box")

			data, err := os.ReadFile(filepath.Join(cmd.Dir, "go.mod"))
			require.NoError(t, err)
			mod, err := modfile.Parse("go.mod", data, nil)
			require.NoError(t, err)
			assert.Equal(t, "fuse.local/unit/utest", mod.Module.Mod.Path)
			require.Len(t, mod.Require, 1)
			assert.Equal(t, "example.com/strutil", mod.Require[0].Mod.Path)
			assert.Equal(t, "v1.0.0", mod.Require[0].Mod.Version)
			require.Len(t, mod.Replace, 1)
			assert.Equal(t, "./refs/0", mod.Replace[0].New.Path)

			_, err = os.Stat(filepath.Join(cmd.Dir, "refs", "0", "strutil.go"))
			require.NoError(t, err)

			require.NoError(t, os.WriteFile(filepath.Join(cmd.Dir, "unit.so"), []byte("ELF"), 0o600))
			return domain.CommandResult{}, nil
		})

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files:      []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
		References: []domain.ReferenceSpec{{Name: "example.com/strutil", Path: zipPath}},
	})
	require.NoError(t, err)

	assert.Equal(t, "utest", unit.ID)
	assert.True(t, unit.Success)
	assert.Equal(t, []byte("ELF"), unit.Image)
	assert.Empty(t, unit.Diagnostics)

	_, err = os.Stat(filepath.Join(fx.workDir, "utest"))
	assert.True(t, os.IsNotExist(err), "workspace should be removed")
}

func TestCompile_DebugKeepsWorkspace(t *testing.T) {
	fx := newFixture(t)

	fx.executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) (domain.CommandResult, error) {
			assert.Contains(t, cmd.Args, "-gcflags=all=-N -l")
			require.NoError(t, os.WriteFile(filepath.Join(cmd.Dir, "unit.so"), []byte("ELF"), 0o600))
			return domain.CommandResult{}, nil
		})

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
		Debug: true,
	})
	require.NoError(t, err)
	assert.True(t, unit.Success)

	_, err = os.Stat(filepath.Join(fx.workDir, "utest", "go.mod"))
	assert.NoError(t, err)
}

func TestCompile_SyntaxErrorSkipsToolchain(t *testing.T) {
	fx := newFixture(t)

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: "package main\n\nfunc (\n"}},
	})
	require.NoError(t, err)

	assert.False(t, unit.Success)
	require.NotEmpty(t, unit.Diagnostics)
	assert.Equal(t, "syntax", unit.Diagnostics[0].Code)
	assert.Equal(t, "unit.go", unit.Diagnostics[0].File)
	assert.GreaterOrEqual(t, unit.Diagnostics[0].Line, 3)
}

func TestCompile_RequiresMainPackage(t *testing.T) {
	fx := newFixture(t)

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: "package strutil\n"}},
	})
	require.NoError(t, err)

	assert.False(t, unit.Success)
	require.Len(t, unit.Diagnostics, 1)
	assert.Equal(t, "unit.go:1:9: error package: package strutil must be main", unit.Diagnostics[0].String())
}

func TestCompile_LineDirectiveMapsSyntaxErrors(t *testing.T) {
	fx := newFixture(t)

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: "//line script.fuse:10\npackage main\n\nvar x = \n"}},
	})
	require.NoError(t, err)

	require.NotEmpty(t, unit.Diagnostics)
	assert.Equal(t, "script.fuse", unit.Diagnostics[0].File)
	assert.GreaterOrEqual(t, unit.Diagnostics[0].Line, 12)
}

func TestCompile_BuildFailure(t *testing.T) {
	fx := newFixture(t)

	fx.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.CommandResult{
		ExitCode: 1,
		Output:   []byte("# fuse.local/unit/utest\n./unit.go:5:2: undefined: missing\n"),
	}, nil)

	unit, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
	})
	require.NoError(t, err)

	assert.False(t, unit.Success)
	assert.Nil(t, unit.Image)
	assert.Equal(t, []domain.Diagnostic{{
		Severity: domain.SeverityError,
		Message:  "undefined: missing",
		File:     "unit.go",
		Line:     5,
		Column:   2,
	}}, unit.Diagnostics)
}

func TestCompile_ToolchainUnavailable(t *testing.T) {
	fx := newFixture(t)
	notFound := errors.New("executable file not found in $PATH")

	fx.executor.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.CommandResult{}, notFound)

	_, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompilerUnavailable)
	assert.ErrorIs(t, err, notFound)
}

func TestCompile_Cancelled(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	fx.executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Command) (domain.CommandResult, error) {
			cancel()
			return domain.CommandResult{}, errors.New("signal: killed")
		})

	_, err := fx.compiler.Compile(ctx, domain.CompileInput{
		Files: []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile_InvalidReferenceArchive(t *testing.T) {
	fx := newFixture(t)
	dir := t.TempDir()

	notZip := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o600))
	noVersion := writeModuleZip(t, t.TempDir(), "example.com/strutil")

	for _, p := range []string{notZip, noVersion} {
		_, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
			Files:      []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
			References: []domain.ReferenceSpec{{Name: "strutil", Path: p}},
		})
		require.Error(t, err, p)
		assert.ErrorIs(t, err, domain.ErrInvalidReferenceArchive, p)
	}
}

func TestCompile_UnresolvedReference(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.compiler.Compile(context.Background(), domain.CompileInput{
		Files:      []domain.SourceFile{{Name: "unit.go", Content: librarySource}},
		References: []domain.ReferenceSpec{{Name: "strutil", Version: "v1.0.0"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.ErrorContains(t, err, "reference has no resolved path")
}
