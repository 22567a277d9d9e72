// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/mvoelker/tourmaline/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/mvoelker/tourmaline/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/mvoelker/tourmaline/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Build metadata, overridden by ldflags on release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the version template used by the CLI's --version flag.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
