package strategy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/golang"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/fuse/internal/adapters/telemetry"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the strategy selector Graft node.
const NodeID graft.ID = "engine.strategy"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{golang.NodeID, telemetry.TracerNodeID, logger.PortNodeID},
		Run: func(ctx context.Context) (*Selector, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSelector(compiler, tracer, log), nil
		},
	})
}
