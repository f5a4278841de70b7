// Package version reports the marquee build version.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/marquee/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/marquee/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

// Info is the resolved build identity, shown by the build-info overlay and
// the version command.
type Info struct {
	Version   string
	Commit    string
	Dirty     bool
	GoVersion string
	BuiltAt   time.Time
}

func init() {
	info := Resolve()
	Version = info.Version
	Commit = info.Commit
}

// Resolve combines ldflags values with VCS data from the Go build info.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuiltAt = t
				}
			}
		}
	}

	if info.Version == "" {
		if !info.BuiltAt.IsZero() {
			info.Version = "dev-" + info.BuiltAt.Format("20060102")
		} else {
			info.Version = "dev"
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	} else if info.Dirty && Commit == "" {
		info.Commit += "-dirty"
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
