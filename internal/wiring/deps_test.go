package wiring_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/app"
	"go.trai.ch/fuse/internal/core/domain"
	_ "go.trai.ch/fuse/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid has a limitation/bug where it infers the dependency ID
	// from the package name of the interface used in Dep[T].
	// Since we use `ports.Executor`, `ports.Logger`, etc., it expects a dependency named "ports".
	// This makes it incompatible with our architecture where multiple distinct nodes
	// implement interfaces from the same `ports` package.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestGraftGraph_BuildsComponents(t *testing.T) {
	root := t.TempDir()
	settings := &domain.Settings{
		ProjectRoot: root,
		PackageRoot: domain.DefaultPackagesPath(root),
		WorkDir:     domain.DefaultWorkPath(root),
		ImageDir:    domain.DefaultImagesPath(root),
		GoBinary:    "go",
		References:  map[string]string{},
		Target:      domain.CurrentTarget(),
	}

	components, _, err := graft.ExecuteFor[*app.Components](
		context.Background(),
		graft.DisableCache(),
		graft.PatchValue(settings),
	)
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)

	resolved, err := components.App.Resolve(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, resolved)

	require.NoDirExists(t, filepath.Join(root, domain.FuseDirName))
}
