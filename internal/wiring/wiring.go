// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fuse/internal/adapters/cas"
	_ "go.trai.ch/fuse/internal/adapters/config"
	_ "go.trai.ch/fuse/internal/adapters/fs"
	_ "go.trai.ch/fuse/internal/adapters/golang"
	_ "go.trai.ch/fuse/internal/adapters/logger"
	_ "go.trai.ch/fuse/internal/adapters/memcache"
	_ "go.trai.ch/fuse/internal/adapters/packagestore"
	_ "go.trai.ch/fuse/internal/adapters/plugin"
	_ "go.trai.ch/fuse/internal/adapters/shell"
	_ "go.trai.ch/fuse/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/fuse/internal/app"
	_ "go.trai.ch/fuse/internal/engine/pipeline"
	_ "go.trai.ch/fuse/internal/engine/references"
	_ "go.trai.ch/fuse/internal/engine/strategy"
)
