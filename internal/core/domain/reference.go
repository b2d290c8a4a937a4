package domain

import (
	"maps"
	"slices"
	"strings"
)

// ReferenceSpec is one external dependency of a compile.
// Path stays empty until the reference resolver succeeds.
type ReferenceSpec struct {
	Name    string
	Version string
	Path    string
}

// IsResolved reports whether the reference has a binary path.
func (r ReferenceSpec) IsResolved() bool {
	return r.Path != ""
}

// ParseReference splits a "name@version" argument. A missing version selects the latest.
func ParseReference(arg string) ReferenceSpec {
	name, version, _ := strings.Cut(arg, "@")
	return ReferenceSpec{Name: name, Version: version}
}

// MergeReferences builds the effective reference set of a compile.
// Explicit and directive entries override defaults. A directive selects the latest version
// unless the same name is also given explicitly. The result is sorted by name.
func MergeReferences(defaults, explicit map[string]string, directives []string) []ReferenceSpec {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = make(map[string]string, len(explicit)+len(directives))
	}
	maps.Copy(merged, explicit)
	for _, name := range directives {
		if _, ok := explicit[name]; !ok {
			merged[name] = ""
		}
	}

	specs := make([]ReferenceSpec, 0, len(merged))
	for _, name := range slices.Sorted(maps.Keys(merged)) {
		specs = append(specs, ReferenceSpec{Name: name, Version: merged[name]})
	}
	return specs
}
