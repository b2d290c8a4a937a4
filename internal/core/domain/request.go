package domain

import (
	"maps"
	"strings"
)

const (
	// DefaultTypeName is the entry type looked up when a request names none.
	DefaultTypeName = "Startup"

	// DefaultMethodName is the entry method looked up when a request names none.
	DefaultMethodName = "Invoke"
)

// sourceFileSuffixes lists the suffixes that mark a request source as a file path.
var sourceFileSuffixes = []string{".go", ".fuse"}

// CompilationRequest describes one fragment to compile and the entry point to bind.
// It is immutable once constructed.
type CompilationRequest struct {
	source           string
	typeName         string
	methodName       string
	references       map[string]string
	originFileName   string
	originLineNumber int
}

// RequestOption configures a CompilationRequest.
type RequestOption func(*CompilationRequest)

// WithEntryPoint sets the type and method to bind. Empty values keep the defaults.
func WithEntryPoint(typeName, methodName string) RequestOption {
	return func(r *CompilationRequest) {
		if typeName != "" {
			r.typeName = typeName
		}
		if methodName != "" {
			r.methodName = methodName
		}
	}
}

// WithReference adds a reference. An empty version selects the latest installed one.
func WithReference(name, version string) RequestOption {
	return func(r *CompilationRequest) {
		r.references[name] = version
	}
}

// WithReferences adds every reference of the given mapping.
func WithReferences(refs map[string]string) RequestOption {
	return func(r *CompilationRequest) {
		maps.Copy(r.references, refs)
	}
}

// WithOrigin annotates generated line markers with the fragment's origin.
func WithOrigin(fileName string, line int) RequestOption {
	return func(r *CompilationRequest) {
		r.originFileName = fileName
		r.originLineNumber = line
	}
}

// NewCompilationRequest builds a request for the given source text or source file path.
func NewCompilationRequest(source string, opts ...RequestOption) CompilationRequest {
	r := CompilationRequest{
		source:     source,
		typeName:   DefaultTypeName,
		methodName: DefaultMethodName,
		references: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Source returns the raw source value, text or path, exactly as supplied.
func (r CompilationRequest) Source() string { return r.source }

// TypeName returns the entry type name.
func (r CompilationRequest) TypeName() string { return r.typeName }

// MethodName returns the entry method name.
func (r CompilationRequest) MethodName() string { return r.methodName }

// References returns a copy of the explicitly requested references.
func (r CompilationRequest) References() map[string]string {
	return maps.Clone(r.references)
}

// OriginFileName returns the origin file used for line markers.
func (r CompilationRequest) OriginFileName() string { return r.originFileName }

// OriginLineNumber returns the origin line used for line markers.
func (r CompilationRequest) OriginLineNumber() int { return r.originLineNumber }

// IsSourceFile reports whether the source value names a file to read from disk.
func (r CompilationRequest) IsSourceFile() bool {
	if strings.ContainsRune(r.source, '\n') {
		return false
	}
	for _, suffix := range sourceFileSuffixes {
		if strings.HasSuffix(r.source, suffix) {
			return true
		}
	}
	return false
}
