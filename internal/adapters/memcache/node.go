package memcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/core/ports"
)

// NodeID is the unique identifier for the compilation cache Graft node.
const NodeID graft.ID = "adapter.callable_cache"

func init() {
	graft.Register(graft.Node[ports.CallableCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CallableCache, error) {
			return New(), nil
		},
	})
}
