package references

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/fuse/internal/adapters/packagestore"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the reference resolver Graft node.
const NodeID graft.ID = "engine.references"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			fs.FileSystemNodeID,
			packagestore.NodeID,
			logger.PortNodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.PackageStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(settings, fsys, store, log), nil
		},
	})
}
