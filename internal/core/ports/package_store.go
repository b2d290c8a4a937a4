package ports

import "go.trai.ch/fuse/internal/core/domain"

// PackageStore is a read-only view over locally installed packages.
//
//go:generate mockgen -source=package_store.go -destination=mocks/mock_package_store.go -package=mocks
type PackageStore interface {
	// Root returns the store's root directory.
	Root() string

	// Versions lists the installed version directory names of a package.
	// It returns an empty list when the package is not installed.
	Versions(id string) ([]string, error)

	// Package returns the file listing of one installed version.
	Package(id, version string) (*domain.PackageCandidate, error)
}
