// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Populated by -ldflags at build time, e.g.
//
//	-X github.com/go-ports/gitmob/internal/buildinfo.Version=v1.2.0
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Summary renders the version line printed by --version.
func Summary() string {
	return fmt.Sprintf("git-mob %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
