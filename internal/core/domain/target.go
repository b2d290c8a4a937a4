package domain

import (
	"runtime"
	"strings"
)

// CurrentTarget returns the target environment label of the running process.
func CurrentTarget() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

// knownOS lists GOOS values accepted when inferring a target label from a path.
var knownOS = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"illumos": true, "ios": true, "js": true, "linux": true, "netbsd": true,
	"openbsd": true, "plan9": true, "solaris": true, "wasip1": true, "windows": true,
}

// IsTargetLabel reports whether s looks like a GOOS_GOARCH label.
func IsTargetLabel(s string) bool {
	goos, goarch, ok := strings.Cut(s, "_")
	return ok && knownOS[goos] && goarch != "" && !strings.Contains(goarch, "_")
}
