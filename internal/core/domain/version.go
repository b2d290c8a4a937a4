package domain

import (
	"strings"

	"golang.org/x/mod/semver"
)

// CanonicalVersion normalizes a version string to semver "v" form.
// It returns "" when v is not a semantic version.
func CanonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// CompareVersions compares two version strings after normalization.
// Invalid versions sort before valid ones.
func CompareVersions(a, b string) int {
	return semver.Compare(CanonicalVersion(a), CanonicalVersion(b))
}
