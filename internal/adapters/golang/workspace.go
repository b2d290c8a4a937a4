package golang

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	modzip "golang.org/x/mod/zip"
)

const (
	exportsFileName = "zz_fuse_exports.go"
	refsDirName     = "refs"
	fallbackGo      = "1.25"
)

var goReleaseRE = regexp.MustCompile(`^go(\d+\.\d+(?:\.\d+)?)`)

// referenceModule is a reference archive extracted into the workspace.
type referenceModule struct {
	version module.Version
	dir     string
}

// writeWorkspace lays out the unit module: sources, exports registry, extracted references and go.mod.
func (c *Compiler) writeWorkspace(dir, id string, input domain.CompileInput, exports []string) error {
	for _, f := range input.Files {
		if err := writeFile(filepath.Join(dir, f.Name), []byte(f.Content)); err != nil {
			return err
		}
	}

	if err := writeFile(filepath.Join(dir, exportsFileName), renderExports(exports)); err != nil {
		return err
	}

	refs, err := extractReferences(dir, input.References)
	if err != nil {
		return err
	}

	mod, err := renderModFile(modulePrefix+id, refs)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrWorkspaceSetup, err), "unit", id)
	}
	return writeFile(filepath.Join(dir, "go.mod"), mod)
}

// renderExports generates the registry the unit loader looks up after opening the plugin.
func renderExports(names []string) []byte {
	var sb strings.Builder
	sb.WriteString("// Code generated by fuse. DO NOT EDIT.\n\n")
	sb.WriteString("package main\n\n")
	sb.WriteString("import fusereflect \"reflect\"\n\n")
	sb.WriteString("var FuseExports = map[string]fusereflect.Type{\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "\t%s: fusereflect.TypeFor[%s](),\n", strconv.Quote(name), name)
	}
	sb.WriteString("}\n")
	return []byte(sb.String())
}

// extractReferences unpacks every reference archive into its own directory under the workspace.
// Archives naming the same module are extracted once.
func extractReferences(dir string, refs []domain.ReferenceSpec) ([]referenceModule, error) {
	seen := make(map[string]bool, len(refs))
	modules := make([]referenceModule, 0, len(refs))

	for _, ref := range refs {
		if !ref.IsResolved() {
			return nil, zerr.With(zerr.Wrap(domain.ErrReferenceNotFound, "reference has no resolved path"), "reference", ref.Name)
		}
		mv, err := archiveVersion(ref.Path)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "reference", ref.Name), "path", ref.Path)
		}
		if seen[mv.Path] {
			continue
		}
		seen[mv.Path] = true

		rel := filepath.Join(refsDirName, strconv.Itoa(len(modules)))
		if err := modzip.Unzip(filepath.Join(dir, rel), mv, ref.Path); err != nil {
			err = errors.Join(domain.ErrInvalidReferenceArchive, err)
			return nil, zerr.With(zerr.With(err, "reference", ref.Name), "path", ref.Path)
		}
		modules = append(modules, referenceModule{version: mv, dir: "./" + filepath.ToSlash(rel)})
	}
	return modules, nil
}

// archiveVersion reads the module path and version from the "path@version/" prefix of a module zip.
func archiveVersion(p string) (module.Version, error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return module.Version{}, errors.Join(domain.ErrInvalidReferenceArchive, err)
	}
	defer func() { _ = r.Close() }()

	if len(r.File) == 0 {
		return module.Version{}, zerr.Wrap(domain.ErrInvalidReferenceArchive, "archive is empty")
	}

	prefix, _, ok := strings.Cut(r.File[0].Name, "/")
	if !ok {
		return module.Version{}, zerr.Wrap(domain.ErrInvalidReferenceArchive, "archive has no module prefix")
	}
	modPath, version, ok := strings.Cut(prefix, "@")
	if !ok {
		return module.Version{}, zerr.Wrap(domain.ErrInvalidReferenceArchive, "archive prefix has no version")
	}

	if err := module.Check(modPath, version); err != nil {
		return module.Version{}, errors.Join(domain.ErrInvalidReferenceArchive, err)
	}
	return module.Version{Path: modPath, Version: version}, nil
}

// renderModFile generates the unit's go.mod, pinning every reference to its extracted copy.
func renderModFile(modPath string, refs []referenceModule) ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(modPath); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt(goDirective()); err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if err := f.AddRequire(ref.version.Path, ref.version.Version); err != nil {
			return nil, err
		}
		if err := f.AddReplace(ref.version.Path, "", ref.dir, ""); err != nil {
			return nil, err
		}
	}
	f.Cleanup()
	return f.Format()
}

// goDirective matches the unit's language version to the running toolchain,
// since plugins only load into a host built by the same release.
func goDirective() string {
	if m := goReleaseRE.FindStringSubmatch(runtime.Version()); m != nil {
		return m[1]
	}
	return fallbackGo
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrWorkspaceSetup, err), "file", path)
	}
	return nil
}
