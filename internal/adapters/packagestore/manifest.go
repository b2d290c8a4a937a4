package packagestore

import "go.trai.ch/fuse/internal/core/domain"

// manifest is the structure of a fuse.pkg.yaml file.
type manifest struct {
	ID      string               `yaml:"id"`
	Version string               `yaml:"version"`
	Files   []domain.PackageFile `yaml:"files"`
}
