// Package version provides build version information.
package version

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "dev"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"

	// GoVersion is the Go version used to build
	GoVersion = runtime.Version()
)

var (
	shaOnce sync.Once
	sha     string
)

// CommitSHA returns the commit hash used to build query-file permalinks.
// It prefers the build-flag value, then the VCS revision recorded in the
// build info, then a "version" file in the working directory, and falls
// back to "main". The result is computed once per process.
func CommitSHA() string {
	shaOnce.Do(func() {
		sha = resolveSHA()
	})
	return sha
}

func resolveSHA() string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	if data, err := os.ReadFile("version"); err == nil {
		if v := strings.TrimSpace(string(data)); v != "" {
			return v
		}
	}
	return "main"
}
