// Package config provides the settings loader for fuse.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const defaultGoBinary = "go"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader from an optional fuse.yaml and the environment.
type Loader struct {
	fs      ports.FileSystem
	lookup  LookupFunc
	homeDir func() (string, error)
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(fsys ports.FileSystem) *Loader {
	return &Loader{
		fs:      fsys,
		lookup:  os.LookupEnv,
		homeDir: os.UserHomeDir,
	}
}

// WithEnvironment replaces the environment lookup. It is primarily used in tests.
func (l *Loader) WithEnvironment(lookup LookupFunc) *Loader {
	l.lookup = lookup
	return l
}

// WithHomeDir replaces the home directory lookup. It is primarily used in tests.
func (l *Loader) WithHomeDir(homeDir func() (string, error)) *Loader {
	l.homeDir = homeDir
	return l
}

// Load resolves the project root, reads fuse.yaml if one is found from the root upwards,
// and applies the environment switches on top.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	root := cwd
	if env := envString(l.lookup, EnvProjectRoot); env != "" {
		root = env
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	root = filepath.Clean(root)

	settings := &domain.Settings{
		ProjectRoot: root,
		WorkDir:     domain.DefaultWorkPath(root),
		ImageDir:    domain.DefaultImagesPath(root),
		GoBinary:    defaultGoBinary,
		References:  make(map[string]string),
		Target:      domain.CurrentTarget(),
	}

	var packages string
	if configPath, ok := l.findConfiguration(root); ok {
		file, err := l.readFusefile(configPath)
		if err != nil {
			return nil, err
		}
		if err := applyFusefile(settings, file, configPath); err != nil {
			return nil, err
		}
		if file.Packages != "" {
			packages = resolvePath(filepath.Dir(configPath), file.Packages)
		}
	}

	l.applyEnvironment(settings)

	if env := envString(l.lookup, EnvPackages); env != "" {
		packages = resolvePath(root, env)
	}
	if packages == "" {
		packages = l.discoverPackageRoot(root)
	}
	settings.PackageRoot = packages

	return settings, nil
}

// findConfiguration walks from dir to the filesystem root looking for fuse.yaml.
func (l *Loader) findConfiguration(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, domain.ConfigFileName)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func (l *Loader) readFusefile(configPath string) (*Fusefile, error) {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var file Fusefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", configPath)
	}
	return &file, nil
}

func applyFusefile(s *domain.Settings, file *Fusefile, configPath string) error {
	configDir := filepath.Dir(configPath)

	for name := range file.References {
		if name == "" {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "empty reference name"), "field", "references"), "path", configPath)
		}
	}
	for name, version := range file.References {
		s.References[name] = version
	}

	if file.WorkDir != "" {
		workDir := resolvePath(configDir, file.WorkDir)
		s.WorkDir = filepath.Join(workDir, domain.WorkDirName)
		s.ImageDir = filepath.Join(workDir, domain.ImagesDirName)
	}
	if file.Go != "" {
		s.GoBinary = file.Go
	}
	s.BuildFlags = append(s.BuildFlags, file.BuildFlags...)

	if file.Cache != nil {
		s.CacheEnabled = *file.Cache
	}
	if file.Debug != nil {
		s.Debug = *file.Debug
	}
	if file.Verbose != nil {
		s.Verbose = *file.Verbose
	}
	return nil
}

func (l *Loader) applyEnvironment(s *domain.Settings) {
	if v, ok := envBool(l.lookup, EnvVerbose); ok {
		s.Verbose = v
	}
	if v, ok := envBool(l.lookup, EnvDebug); ok {
		s.Debug = v
	}
	if v, ok := envBool(l.lookup, EnvCache); ok {
		s.CacheEnabled = v
	}
	if goBin := envString(l.lookup, EnvGo); goBin != "" {
		s.GoBinary = goBin
	}
}

// discoverPackageRoot prefers a project-local store and falls back to the user store.
func (l *Loader) discoverPackageRoot(root string) string {
	local := domain.DefaultPackagesPath(root)
	if info, err := l.fs.Stat(local); err == nil && info.IsDir() {
		return local
	}

	home, err := l.homeDir()
	if err != nil || home == "" {
		return local
	}
	return domain.DefaultPackagesPath(home)
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}
