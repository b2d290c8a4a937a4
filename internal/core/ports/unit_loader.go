package ports

import (
	"context"
	"reflect"

	"go.trai.ch/fuse/internal/core/domain"
)

// Unit is a compiled unit loaded into the process.
//
//go:generate mockgen -source=unit_loader.go -destination=mocks/mock_unit_loader.go -package=mocks
type Unit interface {
	// ID returns the unit identifier assigned at compile time.
	ID() string

	// TypeNames lists the exported type names, sorted.
	TypeNames() []string

	// LookupType returns the exported type with the given name.
	LookupType(name string) (reflect.Type, bool)
}

// UnitLoader loads compiled images into the running process.
type UnitLoader interface {
	// Load makes the unit's exported types queryable. Loaded units are never unloaded.
	Load(ctx context.Context, unit *domain.CompiledUnit) (Unit, error)
}
