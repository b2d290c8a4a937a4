// Package references resolves the references of a compile to binary paths.
package references

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver maps reference names to files, either directly on disk or through the package store.
// Every call re-reads the store; nothing is cached between compiles.
type Resolver struct {
	root   string
	target string
	fs     ports.FileSystem
	store  ports.PackageStore
	logger ports.Logger
}

// NewResolver creates a new Resolver anchored at the project root in settings.
func NewResolver(
	settings *domain.Settings,
	fsys ports.FileSystem,
	store ports.PackageStore,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		root:   settings.ProjectRoot,
		target: settings.Target,
		fs:     fsys,
		store:  store,
		logger: logger,
	}
}

// Resolve returns refs sorted by name with every Path filled in.
// It stops at the first reference that cannot be resolved.
func (r *Resolver) Resolve(ctx context.Context, refs []domain.ReferenceSpec) ([]domain.ReferenceSpec, error) {
	resolved := slices.Clone(refs)
	slices.SortFunc(resolved, func(a, b domain.ReferenceSpec) int {
		return strings.Compare(a.Name, b.Name)
	})

	for i := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.resolveOne(resolved[i])
		if err != nil {
			return nil, err
		}
		resolved[i].Path = p
		r.logger.Debug(fmt.Sprintf("resolved %s to %s", resolved[i].Name, p))
	}
	return resolved, nil
}

func (r *Resolver) resolveOne(ref domain.ReferenceSpec) (string, error) {
	name := ref.Name

	if strings.HasSuffix(name, domain.ReferenceSuffix) && strings.ContainsAny(name, `/\`) {
		p := filepath.FromSlash(name)
		if !filepath.IsAbs(p) {
			p = filepath.Join(r.root, p)
		}
		if !r.isFile(p) {
			return "", zerr.With(referenceError(domain.ErrReferenceNotFound, ref), "path", p)
		}
		return p, nil
	}

	if !strings.ContainsAny(name, `/\`) {
		local := filepath.Join(r.root, withSuffix(name))
		if r.isFile(local) {
			return local, nil
		}
	}

	return r.fromStore(ref, strings.TrimSuffix(name, domain.ReferenceSuffix))
}

func (r *Resolver) fromStore(ref domain.ReferenceSpec, id string) (string, error) {
	versions, err := r.store.Versions(id)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, fmt.Sprintf("reference %q", ref.Name)), "reference", ref.Name)
	}

	version, err := selectVersion(versions, ref)
	if err != nil {
		return "", err
	}

	pkg, err := r.store.Package(id, version)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, fmt.Sprintf("reference %q", ref.Name)), "reference", ref.Name)
	}

	file, ok := selectFile(pkg, r.target)
	if !ok {
		err := zerr.With(referenceError(domain.ErrReferenceAssemblyNotFound, ref), "package", id)
		return "", zerr.With(zerr.With(err, "version", version), "target", r.target)
	}

	return filepath.Join(r.store.Root(), filepath.FromSlash(id), version, filepath.FromSlash(file.Path)), nil
}

// selectVersion picks the highest installed version, or the one equal to the reference's constraint.
func selectVersion(versions []string, ref domain.ReferenceSpec) (string, error) {
	if ref.Version == "" {
		var best string
		for _, v := range versions {
			if domain.CanonicalVersion(v) == "" {
				continue
			}
			if best == "" || domain.CompareVersions(v, best) > 0 {
				best = v
			}
		}
		if best == "" {
			return "", referenceError(domain.ErrPackageNotFound, ref)
		}
		return best, nil
	}

	want := domain.CanonicalVersion(ref.Version)
	if want == "" {
		return "", referenceError(domain.ErrInvalidVersion, ref)
	}
	for _, v := range versions {
		if domain.CanonicalVersion(v) == want {
			return v, nil
		}
	}
	return "", referenceError(domain.ErrPackageNotFound, ref)
}

// selectFile finds the reference binary of pkg for target. In order of preference:
// the reference tree built for target, the target-independent reference tree,
// then any other file built for target.
func selectFile(pkg *domain.PackageCandidate, target string) (domain.PackageFile, bool) {
	base := path.Base(pkg.ID) + domain.ReferenceSuffix
	preferences := []func(domain.PackageFile) bool{
		func(f domain.PackageFile) bool { return f.InReferenceTree() && f.Target == target },
		func(f domain.PackageFile) bool { return f.InReferenceTree() && f.Target == "" },
		func(f domain.PackageFile) bool { return !f.InReferenceTree() && f.Target == target },
	}

	for _, matches := range preferences {
		for _, f := range pkg.Files {
			if path.Base(f.Path) == base && matches(f) {
				return f, true
			}
		}
	}
	return domain.PackageFile{}, false
}

func (r *Resolver) isFile(p string) bool {
	info, err := r.fs.Stat(p)
	return err == nil && !info.IsDir()
}

func withSuffix(name string) string {
	if strings.HasSuffix(name, domain.ReferenceSuffix) {
		return name
	}
	return name + domain.ReferenceSuffix
}

func referenceError(sentinel error, ref domain.ReferenceSpec) error {
	var err error = zerr.Wrap(sentinel, fmt.Sprintf("reference %q", ref.Name))
	if ref.Version != "" {
		err = zerr.With(err, "version", ref.Version)
	}
	return zerr.With(err, "reference", ref.Name)
}
