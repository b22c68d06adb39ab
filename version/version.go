package version

import (
	"runtime/debug"
	"sync"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

const modulePath = "github.com/kbukum/wirekit"

var (
	resolveOnce sync.Once
	resolved    string
)

// String returns the version, falling back to the module version recorded
// in the build info when Version was not set at build time.
func String() string {
	resolveOnce.Do(func() {
		resolved = resolve(Version, GitCommit, readBuildInfo())
	})
	return resolved
}

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return "wirekit/" + String()
}

func readBuildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

func resolve(version, commit string, info *debug.BuildInfo) string {
	if version == "dev" && info != nil {
		for _, dep := range info.Deps {
			if dep.Path == modulePath && dep.Version != "" && dep.Version != "(devel)" {
				return dep.Version
			}
		}
		if commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" {
		return version + "-" + commit
	}
	return version
}
