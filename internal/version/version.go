// Package version holds build metadata injected at link time.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the VCS revision of the build.
	Commit = "unknown"
)
