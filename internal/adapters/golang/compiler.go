// Package golang implements the compilation engine on top of the Go toolchain.
// Each compile gets its own module and workspace and is built with -buildmode=plugin.
package golang

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

// modulePrefix is prepended to the unit id to form the unit's module path.
// A distinct module path per unit keeps plugin paths from colliding in one process.
const modulePrefix = "fuse.local/unit/"

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by driving `go build` through a ports.Executor.
type Compiler struct {
	workDir    string
	goBinary   string
	buildFlags []string
	executor   ports.Executor
	logger     ports.Logger
	newID      func() string
}

// NewCompiler creates a new Compiler from the process settings.
func NewCompiler(settings *domain.Settings, executor ports.Executor, logger ports.Logger) *Compiler {
	return &Compiler{
		workDir:    settings.WorkDir,
		goBinary:   settings.GoBinary,
		buildFlags: settings.BuildFlags,
		executor:   executor,
		logger:     logger,
		newID:      newUnitID,
	}
}

func newUnitID() string {
	return "u" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Compile builds input into a plugin image.
// Syntax errors are reported without invoking the toolchain.
func (c *Compiler) Compile(ctx context.Context, input domain.CompileInput) (*domain.CompiledUnit, error) {
	unit := &domain.CompiledUnit{ID: c.newID()}

	exports, diags := inspectSources(input.Files)
	if len(diags) > 0 {
		unit.Diagnostics = diags
		return unit, nil
	}

	dir := filepath.Join(c.workDir, unit.ID)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrWorkspaceSetup, err), "dir", dir)
	}
	if input.Debug {
		c.logger.Debug("keeping workspace " + dir)
	} else {
		defer c.removeWorkspace(dir)
	}

	if err := c.writeWorkspace(dir, unit.ID, input, exports); err != nil {
		return nil, err
	}

	c.logger.Debug("building unit " + unit.ID)
	result, err := c.executor.Run(ctx, c.buildCommand(dir, input.Debug))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, zerr.Wrap(ctxErr, "compilation cancelled")
		}
		return nil, zerr.With(errors.Join(domain.ErrCompilerUnavailable, err), "go", c.goBinary)
	}

	if !result.Succeeded() {
		unit.Diagnostics = parseDiagnostics(result.Output)
		return unit, nil
	}

	image, err := os.ReadFile(filepath.Join(dir, domain.UnitImageName))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read compiled image"), "unit", unit.ID)
	}

	unit.Image = image
	unit.Success = true
	return unit, nil
}

func (c *Compiler) buildCommand(dir string, debug bool) domain.Command {
	args := []string{"build", "-buildmode=plugin"}
	if debug {
		args = append(args, "-gcflags=all=-N -l")
	}
	args = append(args, c.buildFlags...)
	args = append(args, "-o", domain.UnitImageName, ".")

	return domain.Command{
		Dir:  dir,
		Name: c.goBinary,
		Args: args,
		Env: map[string]string{
			"CGO_ENABLED": "1",
			"GOFLAGS":     "-mod=mod",
			"GOWORK":      "off",
			"GOTOOLCHAIN": "local",
		},
	}
}

func (c *Compiler) removeWorkspace(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		c.logger.Warn("failed to remove workspace " + dir + ": " + err.Error())
	}
}
