// Package pipeline turns a compilation request into a callable handle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/callable"
	"go.trai.ch/fuse/internal/engine/entrypoint"
	"go.trai.ch/fuse/internal/engine/preprocess"
	"go.trai.ch/fuse/internal/engine/references"
	"go.trai.ch/fuse/internal/engine/strategy"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Pipeline compiles, loads and binds fragments.
// With caching enabled, byte-identical sources share one handle and one compile.
type Pipeline struct {
	settings *domain.Settings
	fs       ports.FileSystem
	resolver *references.Resolver
	selector *strategy.Selector
	loader   ports.UnitLoader
	cache    ports.CallableCache
	hasher   ports.Hasher
	tracer   ports.Tracer
	logger   ports.Logger

	inflight singleflight.Group
}

// Dependencies groups the collaborators of a Pipeline.
type Dependencies struct {
	FileSystem ports.FileSystem
	Resolver   *references.Resolver
	Selector   *strategy.Selector
	Loader     ports.UnitLoader
	Cache      ports.CallableCache
	Hasher     ports.Hasher
	Tracer     ports.Tracer
	Logger     ports.Logger
}

// New creates a new Pipeline.
func New(settings *domain.Settings, deps Dependencies) *Pipeline {
	return &Pipeline{
		settings: settings,
		fs:       deps.FileSystem,
		resolver: deps.Resolver,
		selector: deps.Selector,
		loader:   deps.Loader,
		cache:    deps.Cache,
		hasher:   deps.Hasher,
		tracer:   deps.Tracer,
		logger:   deps.Logger,
	}
}

// Compile returns the callable for req, blocking until it is ready.
func (p *Pipeline) Compile(ctx context.Context, req domain.CompilationRequest) (domain.Callable, error) {
	if req.Source() == "" {
		return nil, domain.ErrEmptySource
	}
	if !p.settings.CacheEnabled {
		return p.build(ctx, req)
	}

	source := req.Source()
	if c, ok := p.cache.Get(source); ok {
		p.logger.Debug("compilation cache hit")
		return c, nil
	}

	result, err, shared := p.inflight.Do(source, func() (any, error) {
		if c, ok := p.cache.Get(source); ok {
			return c, nil
		}
		c, err := p.build(ctx, req)
		if err != nil {
			return nil, err
		}
		stored, _ := p.cache.PutIfAbsent(source, c)
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug("joined in-flight compilation")
	}
	return result.(domain.Callable), nil
}

// Resolve resolves refs without compiling anything.
func (p *Pipeline) Resolve(ctx context.Context, refs []domain.ReferenceSpec) ([]domain.ReferenceSpec, error) {
	ctx, span := p.tracer.Start(ctx, "fuse.resolve")
	defer span.End()

	resolved, err := p.resolver.Resolve(ctx, refs)
	span.RecordError(err)
	return resolved, err
}

func (p *Pipeline) build(ctx context.Context, req domain.CompilationRequest) (_ domain.Callable, err error) {
	ctx, span := p.tracer.Start(ctx, "fuse.compile")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	text, origin, err := p.readSource(req)
	if err != nil {
		return nil, err
	}
	span.SetAttribute("source", p.hasher.HashBytes([]byte(text)))

	stripped, directives := preprocess.StripDirectives(text)
	refs := domain.MergeReferences(p.settings.References, req.References(), directives)

	resolved, err := p.Resolve(ctx, refs)
	if err != nil {
		return nil, err
	}

	outcome, err := p.selector.Select(ctx, strategy.Plan{
		Source:     stripped,
		TypeName:   req.TypeName(),
		MethodName: req.MethodName(),
		References: resolved,
		Origin:     origin,
		Debug:      p.settings.Debug,
	})
	if err != nil {
		return nil, err
	}

	var unit *domain.CompiledUnit
	switch o := outcome.(type) {
	case domain.LibraryForm:
		unit = o.Unit
		span.SetAttribute("form", "library")
	case domain.ExpressionForm:
		unit = o.Unit
		span.SetAttribute("form", "expression")
	case domain.BothFailed:
		return nil, o.Err()
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrCompilationFailed, "unexpected compile outcome"), "outcome", fmt.Sprintf("%T", outcome))
	}

	loaded, err := p.load(ctx, unit)
	if err != nil {
		return nil, err
	}

	switch d := entrypoint.Resolve(loaded, req.TypeName(), req.MethodName()).(type) {
	case entrypoint.Found:
		p.logger.Debug(fmt.Sprintf("bound %s.%s in unit %s", d.TypeName, d.MethodName, loaded.ID()))
		return callable.New(d, p.tracer), nil
	case entrypoint.Missing:
		return nil, d.Err
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrTypeNotFound, "entry point not bound"), "type", req.TypeName())
	}
}

func (p *Pipeline) load(ctx context.Context, unit *domain.CompiledUnit) (ports.Unit, error) {
	ctx, span := p.tracer.Start(ctx, "fuse.load")
	defer span.End()
	span.SetAttribute("unit", unit.ID)

	loaded, err := p.loader.Load(ctx, unit)
	span.RecordError(err)
	return loaded, err
}

// readSource returns the fragment text and its origin.
// Sources naming a .go or .fuse file are read from disk; the file becomes the origin
// unless the request carries one.
func (p *Pipeline) readSource(req domain.CompilationRequest) (string, strategy.Origin, error) {
	origin := strategy.Origin{File: req.OriginFileName(), Line: req.OriginLineNumber()}
	if !req.IsSourceFile() {
		return req.Source(), origin, nil
	}

	path := req.Source()
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.settings.ProjectRoot, path)
	}

	data, err := p.fs.ReadFile(path)
	if err != nil {
		return "", origin, zerr.With(errors.Join(domain.ErrSourceRead, err), "path", path)
	}
	if len(data) == 0 {
		return "", origin, zerr.With(zerr.Wrap(domain.ErrEmptySource, "source file is empty"), "path", path)
	}

	if origin.File == "" {
		origin = strategy.Origin{File: path, Line: 1}
	}
	return string(data), origin, nil
}
