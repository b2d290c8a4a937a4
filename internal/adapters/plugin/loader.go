// Package plugin loads compiled units into the running process with the standard plugin package.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"plugin"
	"reflect"
	"slices"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExportsSymbol is the package-level variable every unit defines to list its types.
const ExportsSymbol = "FuseExports"

// symbolTable is the part of *plugin.Plugin the loader needs.
type symbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

var _ ports.UnitLoader = (*Loader)(nil)

// Loader implements ports.UnitLoader.
// Loaded plugins stay mapped for the life of the process.
type Loader struct {
	images ports.ImageStore
	logger ports.Logger
	open   func(path string) (symbolTable, error)
}

// NewLoader creates a new Loader that stages images through images.
func NewLoader(images ports.ImageStore, logger ports.Logger) *Loader {
	return &Loader{
		images: images,
		logger: logger,
		open:   openPlugin,
	}
}

func openPlugin(path string) (symbolTable, error) {
	return plugin.Open(path)
}

// Load stages the unit's image on disk, opens it and reads its exports registry.
func (l *Loader) Load(ctx context.Context, unit *domain.CompiledUnit) (ports.Unit, error) {
	if unit == nil || !unit.Success || len(unit.Image) == 0 {
		return nil, zerr.Wrap(domain.ErrLoadFailed, "unit has no image")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.images.Put(unit.Image)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrLoadFailed, err), "unit", unit.ID)
	}

	l.logger.Debug("opening unit " + unit.ID + " from " + path)
	p, err := l.open(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrLoadFailed, err), "unit", unit.ID)
	}

	sym, err := p.Lookup(ExportsSymbol)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrLoadFailed, err), "unit", unit.ID)
	}

	var types map[string]reflect.Type
	switch exports := sym.(type) {
	case *map[string]reflect.Type:
		types = *exports
	case map[string]reflect.Type:
		types = exports
	default:
		err := zerr.With(zerr.Wrap(domain.ErrLoadFailed, "unexpected exports symbol"), "unit", unit.ID)
		return nil, zerr.With(err, "symbol_type", fmt.Sprintf("%T", sym))
	}

	return &loadedUnit{
		id:    unit.ID,
		types: maps.Clone(types),
		names: slices.Sorted(maps.Keys(types)),
	}, nil
}

// loadedUnit implements ports.Unit over an opened plugin's exports registry.
type loadedUnit struct {
	id    string
	types map[string]reflect.Type
	names []string
}

func (u *loadedUnit) ID() string {
	return u.id
}

func (u *loadedUnit) TypeNames() []string {
	return slices.Clone(u.names)
}

func (u *loadedUnit) LookupType(name string) (reflect.Type, bool) {
	t, ok := u.types[name]
	return t, ok
}
