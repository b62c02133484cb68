package buildinfo

import "fmt"

// Set at build time via -ldflags "-X scrollspace/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for window titles and log lines.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is the long form printed by -version.
func String() string {
	return fmt.Sprintf("scrollspace %s (commit %s, built %s)", Version, Commit, Date)
}
