package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceRead is returned when a source file cannot be read.
	ErrSourceRead = zerr.New("failed to read source")

	// ErrEmptySource is returned when a compilation request carries no source text.
	ErrEmptySource = zerr.New("source is empty")

	// ErrReferenceNotFound is returned when a path reference does not exist on disk.
	ErrReferenceNotFound = zerr.New("reference not found")

	// ErrPackageNotFound is returned when no installed package version satisfies a reference.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrInvalidVersion is returned when a reference carries a version that is not a semantic version.
	ErrInvalidVersion = zerr.New("invalid version constraint")

	// ErrReferenceAssemblyNotFound is returned when a package holds no binary matching the reference.
	ErrReferenceAssemblyNotFound = zerr.New("no matching reference binary in package")

	// ErrManifestInvalid is returned when a package manifest cannot be parsed.
	ErrManifestInvalid = zerr.New("invalid package manifest")

	// ErrCompilationFailed is returned when both the library and the expression attempts fail.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrCompilerUnavailable is returned when the compilation engine cannot be started.
	ErrCompilerUnavailable = zerr.New("compiler unavailable")

	// ErrWorkspaceSetup is returned when a build workspace cannot be prepared.
	ErrWorkspaceSetup = zerr.New("failed to prepare build workspace")

	// ErrInvalidReferenceArchive is returned when a reference binary is not a valid module zip.
	ErrInvalidReferenceArchive = zerr.New("invalid reference archive")

	// ErrLoadFailed is returned when a compiled unit cannot be loaded into the process.
	ErrLoadFailed = zerr.New("failed to load compiled unit")

	// ErrTypeNotFound is returned when the requested type is not exported by a loaded unit.
	ErrTypeNotFound = zerr.New("type not found")

	// ErrMethodNotAccessible is returned when the requested method is missing or has the wrong shape.
	ErrMethodNotAccessible = zerr.New("method not accessible")

	// ErrInvocationPanicked is returned through a future when the invoked method panics.
	ErrInvocationPanicked = zerr.New("invocation panicked")

	// ErrInputTypeMismatch is returned through a future when the input cannot be converted
	// to the method's parameter type.
	ErrInputTypeMismatch = zerr.New("input type mismatch")

	// ErrImageStoreFailed is returned when a compiled image cannot be staged on disk.
	ErrImageStoreFailed = zerr.New("failed to stage compiled image")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a configuration value is invalid.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrCommandFailed is returned when a subprocess exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCheckFailed is returned when at least one checked source does not compile.
	ErrCheckFailed = zerr.New("check failed")
)
