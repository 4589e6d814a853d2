// Package cmd holds build metadata for the savekeep binary, set at link
// time with -ldflags "-X github.com/thoreinstein/savekeep/cmd.Version=...".
package cmd

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the version with the commit abbreviated to seven
// characters, as in "1.2.0 (3f2a9c1)". Development builds without a commit
// return the version alone.
func Short() string {
	if Commit == "" || Commit == "none" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + " (" + c + ")"
}
