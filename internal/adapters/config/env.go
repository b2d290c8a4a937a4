package config

import (
	"strconv"
	"strings"
)

// Environment variables read once at startup.
const (
	EnvVerbose     = "FUSE_VERBOSE"
	EnvDebug       = "FUSE_DEBUG"
	EnvCache       = "FUSE_CACHE"
	EnvProjectRoot = "FUSE_PROJECT_ROOT"
	EnvPackages    = "FUSE_PACKAGES"
	EnvGo          = "FUSE_GO"
)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// envBool reports the toggle state of key, or ok=false when it is unset or empty.
// Values that do not parse as booleans count as enabled.
func envBool(lookup LookupFunc, key string) (value, ok bool) {
	raw, found := lookup(key)
	raw = strings.TrimSpace(raw)
	if !found || raw == "" {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return true, true
	}
	return b, true
}

// envString returns the trimmed value of key, or "" when unset.
func envString(lookup LookupFunc, key string) string {
	raw, _ := lookup(key)
	return strings.TrimSpace(raw)
}
