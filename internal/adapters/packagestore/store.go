// Package packagestore reads locally installed packages laid out as <root>/<id>/<version>/.
package packagestore

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	fsadapter "go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PackageStore = (*Store)(nil)

// Store implements ports.PackageStore over a directory tree.
// Nothing is cached: every call reflects what is installed at that moment.
type Store struct {
	root   string
	fsys   fs.FS
	walker *fsadapter.Walker
}

// NewStore creates a Store rooted at root.
func NewStore(root string, walker *fsadapter.Walker) *Store {
	return newStoreWithFS(root, os.DirFS(root), walker)
}

func newStoreWithFS(root string, fsys fs.FS, walker *fsadapter.Walker) *Store {
	return &Store{root: root, fsys: fsys, walker: walker}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Versions lists the installed version directories of id, sorted from highest to lowest.
// Subdirectories that are not semantic versions belong to nested package ids and are skipped.
func (s *Store) Versions(id string) ([]string, error) {
	if !validID(id) {
		return []string{}, nil
	}

	entries, err := fs.ReadDir(s.fsys, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list package versions"), "package", id)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && domain.CanonicalVersion(entry.Name()) != "" {
			versions = append(versions, entry.Name())
		}
	}

	slices.SortFunc(versions, func(a, b string) int {
		return domain.CompareVersions(b, a)
	})
	return versions, nil
}

// Package returns the file listing of one installed version, from its manifest when present
// and from the directory tree otherwise.
func (s *Store) Package(id, version string) (*domain.PackageCandidate, error) {
	dir := path.Join(id, version)
	if !validID(id) || !fs.ValidPath(dir) {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "no such package version"), "package", id), "version", version)
	}

	info, err := fs.Stat(s.fsys, dir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "no such package version"), "package", id), "version", version)
	}

	data, err := fs.ReadFile(s.fsys, path.Join(dir, domain.ManifestFileName))
	switch {
	case err == nil:
		return s.fromManifest(id, version, data)
	case errors.Is(err, fs.ErrNotExist):
		return s.fromTree(id, version, dir)
	default:
		return nil, zerr.With(errors.Join(domain.ErrManifestInvalid, err), "package", id)
	}
}

func (s *Store) fromManifest(id, version string, data []byte) (*domain.PackageCandidate, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestInvalid, err), "package", id)
	}

	for _, f := range m.Files {
		if !fs.ValidPath(f.Path) || f.Path == "." {
			err := zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "file path outside package"), "package", id)
			return nil, zerr.With(err, "file", f.Path)
		}
	}

	if m.ID != "" && m.ID != id {
		err := zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "manifest id does not match package"), "package", id)
		return nil, zerr.With(err, "manifest_id", m.ID)
	}

	return &domain.PackageCandidate{ID: id, Version: version, Files: m.Files}, nil
}

func (s *Store) fromTree(id, version, dir string) (*domain.PackageCandidate, error) {
	sub, err := fs.Sub(s.fsys, dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open package"), "package", id)
	}

	var files []domain.PackageFile
	for p := range s.walker.WalkFiles(sub, nil) {
		files = append(files, domain.PackageFile{Path: p, Target: inferTarget(p)})
	}
	slices.SortFunc(files, func(a, b domain.PackageFile) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &domain.PackageCandidate{ID: id, Version: version, Files: files}, nil
}

// inferTarget returns the last directory segment of p that is a target label.
func inferTarget(p string) string {
	segments := strings.Split(path.Dir(p), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if domain.IsTargetLabel(segments[i]) {
			return segments[i]
		}
	}
	return ""
}

func validID(id string) bool {
	return id != "" && id != "." && fs.ValidPath(id)
}
