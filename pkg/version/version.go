// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set with -ldflags "-X github.com/scopezero/scopezero/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Link-time variables.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String formats the full build description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate)
}
