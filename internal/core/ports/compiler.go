package ports

import (
	"context"

	"go.trai.ch/fuse/internal/core/domain"
)

// Compiler is the boundary to the compilation engine.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile builds the given sources into a loadable unit.
	//
	// Source problems are reported as diagnostics on an unsuccessful unit.
	// The error is reserved for infrastructure failures such as a missing toolchain.
	Compile(ctx context.Context, input domain.CompileInput) (*domain.CompiledUnit, error)
}
