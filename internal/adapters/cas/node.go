package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the image store Graft node.
const NodeID graft.ID = "adapter.image_store"

func init() {
	graft.Register(graft.Node[ports.ImageStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ImageStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.ImageDir, hasher), nil
		},
	})
}
