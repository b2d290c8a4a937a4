package domain

// Settings holds the process-wide configuration, read once at startup.
type Settings struct {
	// Verbose enables debug-level self-diagnostics.
	Verbose bool

	// Debug enables unoptimized builds and source line markers.
	Debug bool

	// CacheEnabled turns on the compilation cache.
	CacheEnabled bool

	// ProjectRoot anchors relative reference paths and package store discovery.
	ProjectRoot string

	// PackageRoot is the root of the local package store.
	PackageRoot string

	// WorkDir holds temporary build workspaces.
	WorkDir string

	// ImageDir holds staged unit images.
	ImageDir string

	// GoBinary is the go command used as the compilation engine.
	GoBinary string

	// BuildFlags are extra flags passed to go build.
	BuildFlags []string

	// References are the default references added to every compile.
	References map[string]string

	// Target is the target environment label used to pick reference binaries.
	Target string
}
