package plugin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/cas"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the unit loader Graft node.
const NodeID graft.ID = "adapter.unit_loader"

func init() {
	graft.Register(graft.Node[ports.UnitLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, logger.PortNodeID},
		Run: func(ctx context.Context) (ports.UnitLoader, error) {
			images, err := graft.Dep[ports.ImageStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(images, log), nil
		},
	})
}
