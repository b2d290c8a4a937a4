package domain

import "strings"

// PackageFile is one file of an installed package.
type PackageFile struct {
	// Path is the slash-separated path relative to the package version directory.
	Path string `yaml:"path"`

	// Target is the target environment label (GOOS_GOARCH); empty means target independent.
	Target string `yaml:"target,omitempty"`
}

// InReferenceTree reports whether the file lives under the reference subtree.
func (f PackageFile) InReferenceTree() bool {
	return strings.HasPrefix(f.Path, ReferenceDirName+"/")
}

// PackageCandidate is a read-only view over one installed package version.
type PackageCandidate struct {
	// ID is the package identifier, usually a Go module path.
	ID string `yaml:"id"`

	// Version is the version directory name as installed.
	Version string `yaml:"version"`

	// Files lists the package files in manifest order.
	Files []PackageFile `yaml:"files"`
}
