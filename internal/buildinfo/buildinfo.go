package buildinfo

import "fmt"

// Overridden at link time via -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("tokenbench %s (commit=%s, date=%s)", Version, Commit, Date)
}
