// Package version exposes build metadata injected via -ldflags.
package version

import "fmt"

// Build metadata. Overridden at link time:
//
//	go build -ldflags "-X github.com/rshade/findash/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line human readable description of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), GetGitCommit(), GetBuildDate())
}
