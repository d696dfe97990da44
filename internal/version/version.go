// Package version reports the build of the charmer tools.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags="-X github.com/dial-a-charmer/charmer/internal/version.Version=v0.3.0 \
//	                   -X github.com/dial-a-charmer/charmer/internal/version.Commit=abc1234"
//
// Other builds fall back to the VCS stamp the go tool embeds, then to "dev".
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the release name, e.g. "v0.3.0".
	Version = ""
	// Commit is the short git revision.
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fromBuildSettings(info.Settings)
		}
	}
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102-150405")
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildSettings fills whatever ldflags left empty from the vcs.* keys.
func fromBuildSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if vcs["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}

	// Build info carries no tags, so an unstamped build is named after the
	// day of its commit.
	if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); Version == "" && err == nil {
		Version = "dev-" + t.Format("20060102")
	}
}

// Full returns "<version> (commit: <commit>)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
