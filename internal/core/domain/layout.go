package domain

import "path/filepath"

const (
	// FuseDirName is the name of the internal workspace directory.
	FuseDirName = ".fuse"

	// PackagesDirName is the name of the package store directory.
	PackagesDirName = "packages"

	// WorkDirName is the name of the directory holding build workspaces.
	WorkDirName = "work"

	// ImagesDirName is the name of the directory holding staged unit images.
	ImagesDirName = "images"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "fuse.yaml"

	// ManifestFileName is the name of a package manifest inside a version directory.
	ManifestFileName = "fuse.pkg.yaml"

	// ReferenceDirName is the package subtree holding reference binaries.
	ReferenceDirName = "ref"

	// ReferenceSuffix is the file suffix of reference binaries (Go module zips).
	ReferenceSuffix = ".zip"

	// UnitImageName is the file name of a staged unit image.
	UnitImageName = "unit.so"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for loadable images (rwxr-x---).
	ExecPerm = 0o750
)

// DefaultFusePath returns the fuse metadata directory under the given root.
func DefaultFusePath(root string) string {
	return filepath.Join(root, FuseDirName)
}

// DefaultPackagesPath returns the package store location under the given root.
// It joins root, .fuse and packages.
func DefaultPackagesPath(root string) string {
	return filepath.Join(root, FuseDirName, PackagesDirName)
}

// DefaultWorkPath returns the build workspace location under the given root.
// It joins root, .fuse and work.
func DefaultWorkPath(root string) string {
	return filepath.Join(root, FuseDirName, WorkDirName)
}

// DefaultImagesPath returns the staged image location under the given root.
// It joins root, .fuse and images.
func DefaultImagesPath(root string) string {
	return filepath.Join(root, FuseDirName, ImagesDirName)
}
