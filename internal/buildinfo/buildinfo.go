// Package buildinfo carries version metadata stamped in with -ldflags, e.g.
//
//	-ldflags "-X fredsistance/internal/buildinfo.Version=v0.3.0"
//
// Unstamped builds fall back to the VCS settings the Go toolchain records.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// vcs reads vcs.revision and vcs.time from the embedded build info.
var vcs = func() (rev, when string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			when = s.Value
		}
	}
	return rev, when
}

func commitAndDate() (string, string) {
	commit, date := Commit, Date
	if commit == "" || date == "" {
		rev, when := vcs()
		if commit == "" {
			commit = rev
		}
		if date == "" {
			date = when
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return commit, date
}

// Short is the version if stamped, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c, _ := commitAndDate(); c != "" {
		return c
	}
	return "dev"
}

func String() string {
	commit, date := commitAndDate()
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, commit, date)
}
