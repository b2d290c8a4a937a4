package packagestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	fsadapter "go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the package store Graft node.
const NodeID graft.ID = "adapter.package_store"

func init() {
	graft.Register(graft.Node[ports.PackageStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, fsadapter.WalkerNodeID},
		Run: func(ctx context.Context) (ports.PackageStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fsadapter.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.PackageRoot, walker), nil
		},
	})
}
