package ports

import "go.trai.ch/fuse/internal/core/domain"

// ConfigLoader defines the interface for loading process settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project file found from cwd upwards and applies the environment switches.
	Load(cwd string) (*domain.Settings, error)
}
