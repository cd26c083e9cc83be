// Package buildinfo identifies the running globe binary. Release builds set
// the variables with -ldflags; other builds fall back to the VCS stamp the
// Go toolchain embeds.
package buildinfo

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Set at build time via -ldflags "-X globe/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

// Get resolves the build identity, preferring -ldflags values over the
// embedded VCS settings.
func Get() Info {
	return resolve(Version, Commit, Date, debug.ReadBuildInfo)
}

func resolve(version, commit, date string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: version, Commit: commit, Date: date}
	bi, ok := read()
	if !ok {
		return info
	}
	if unset(info.Version) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if unset(info.Commit) {
				info.Commit = s.Value
			}
		case "vcs.time":
			if unset(info.Date) {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func unset(s string) bool { return s == "" || s == "dev" || s == "unknown" }

// Short is the version for a release build, else a 12-digit commit with a
// "+dirty" suffix for modified trees, else "dev".
func (i Info) Short() string {
	if !unset(i.Version) {
		return i.Version
	}
	if unset(i.Commit) {
		return "dev"
	}
	c := i.Commit
	if len(c) > 12 {
		c = c[:12]
	}
	if i.Modified {
		c += "+dirty"
	}
	return c
}

// Fields returns the identity as log fields.
func (i Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", i.Version),
		zap.String("commit", i.Commit),
		zap.String("date", i.Date),
		zap.Bool("modified", i.Modified),
	}
}

// Short returns Get().Short().
func Short() string { return Get().Short() }
