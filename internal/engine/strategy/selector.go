package strategy

import (
	"context"
	"fmt"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

// Selector runs the library attempt and, only if it fails, the expression attempt.
type Selector struct {
	compiler ports.Compiler
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewSelector creates a new Selector.
func NewSelector(compiler ports.Compiler, tracer ports.Tracer, logger ports.Logger) *Selector {
	return &Selector{compiler: compiler, tracer: tracer, logger: logger}
}

// Select compiles plan and reports which form succeeded.
// Source problems are part of the outcome; the error is reserved for infrastructure failures.
func (s *Selector) Select(ctx context.Context, plan Plan) (domain.Outcome, error) {
	library, err := s.attempt(ctx, "fuse.attempt.library", LibraryFileName, LibrarySource(plan), plan)
	if err != nil {
		return nil, err
	}
	if library.Success {
		return domain.LibraryForm{Unit: library}, nil
	}

	s.logger.Debug(fmt.Sprintf("library form failed with %d diagnostics, trying expression form", len(library.Diagnostics)))
	expression, err := s.attempt(ctx, "fuse.attempt.expression", ExpressionFileName, ExpressionSource(plan), plan)
	if err != nil {
		return nil, err
	}
	if expression.Success {
		return domain.ExpressionForm{Unit: expression, LibraryDiagnostics: library.Diagnostics}, nil
	}

	return domain.BothFailed{Library: library.Diagnostics, Expression: expression.Diagnostics}, nil
}

func (s *Selector) attempt(ctx context.Context, spanName, fileName, content string, plan Plan) (*domain.CompiledUnit, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	unit, err := s.compiler.Compile(ctx, domain.CompileInput{
		Files:      []domain.SourceFile{{Name: fileName, Content: content}},
		References: plan.References,
		Debug:      plan.Debug,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("unit", unit.ID)
	span.SetAttribute("success", unit.Success)
	span.SetAttribute("diagnostics", len(unit.Diagnostics))
	return unit, nil
}
