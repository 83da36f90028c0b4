// Package version exposes build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags at release build time; defaults identify dev builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, commit and build date.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String returns a single-line version summary.
func String() string {
	return fmt.Sprintf("compliscan %s (%s, %s)", Version, GitCommit, BuildDate)
}
