// Package app implements the application layer for fuse.
package app

import (
	"context"
	"runtime"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine compiles requests into callables and resolves references.
// The pipeline implements it.
type Engine interface {
	Compile(ctx context.Context, req domain.CompilationRequest) (domain.Callable, error)
	Resolve(ctx context.Context, refs []domain.ReferenceSpec) ([]domain.ReferenceSpec, error)
}

// logModes is implemented by loggers whose verbosity and format can change at runtime.
type logModes interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	engine Engine
	logger ports.Logger
	limit  int
}

// New creates a new App instance.
func New(engine Engine, log ports.Logger) *App {
	return &App{
		engine: engine,
		logger: log,
		limit:  runtime.NumCPU(),
	}
}

// WithConcurrency bounds the number of compiles Check runs at once.
// Values below one keep the default of one compile per CPU.
func (a *App) WithConcurrency(n int) *App {
	if n > 0 {
		a.limit = n
	}
	return a
}

// SetVerbose enables debug output if the logger supports it.
func (a *App) SetVerbose(enable bool) {
	if l, ok := a.logger.(logModes); ok {
		l.SetVerbose(enable)
	}
}

// SetJSON switches the logger to JSON output if it supports it.
func (a *App) SetJSON(enable bool) {
	if l, ok := a.logger.(logModes); ok {
		l.SetJSON(enable)
	}
}

// Compile returns the callable for req.
func (a *App) Compile(ctx context.Context, req domain.CompilationRequest) (domain.Callable, error) {
	return a.engine.Compile(ctx, req)
}

// Invoke compiles req and runs its entry point once with input, waiting for the result.
func (a *App) Invoke(ctx context.Context, req domain.CompilationRequest, input any) (any, error) {
	callable, err := a.engine.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	value, err := callable.Invoke(ctx, input).Await(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "invocation failed")
	}
	return value, nil
}

// CheckResult reports whether one source compiled.
type CheckResult struct {
	Source string
	Err    error
}

// OK reports whether the source compiled and bound its entry point.
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// Check compiles every source concurrently. Results keep the order of sources.
func (a *App) Check(ctx context.Context, sources []string, opts ...domain.RequestOption) []CheckResult {
	results := make([]CheckResult, len(sources))

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i, source := range sources {
		g.Go(func() error {
			_, err := a.engine.Compile(ctx, domain.NewCompilationRequest(source, opts...))
			results[i] = CheckResult{Source: source, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Resolve resolves refs to binary paths without compiling anything.
func (a *App) Resolve(ctx context.Context, refs []domain.ReferenceSpec) ([]domain.ReferenceSpec, error) {
	return a.engine.Resolve(ctx, refs)
}
