package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/fuse/internal/adapters/memcache"
	"go.trai.ch/fuse/internal/adapters/plugin"
	"go.trai.ch/fuse/internal/adapters/telemetry"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/references"
	"go.trai.ch/fuse/internal/engine/strategy"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			fs.FileSystemNodeID,
			fs.HasherNodeID,
			references.NodeID,
			strategy.NodeID,
			plugin.NodeID,
			memcache.NodeID,
			telemetry.TracerNodeID,
			logger.PortNodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			var deps Dependencies
			if deps.FileSystem, err = graft.Dep[ports.FileSystem](ctx); err != nil {
				return nil, err
			}
			if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
				return nil, err
			}
			if deps.Resolver, err = graft.Dep[*references.Resolver](ctx); err != nil {
				return nil, err
			}
			if deps.Selector, err = graft.Dep[*strategy.Selector](ctx); err != nil {
				return nil, err
			}
			if deps.Loader, err = graft.Dep[ports.UnitLoader](ctx); err != nil {
				return nil, err
			}
			if deps.Cache, err = graft.Dep[ports.CallableCache](ctx); err != nil {
				return nil, err
			}
			if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
				return nil, err
			}
			if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
				return nil, err
			}
			return New(settings, deps), nil
		},
	})
}
