// Package version holds build metadata injected via ldflags:
//
//	-X github.com/brokertools/directory/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:gochecknoglobals // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for the startup log.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
