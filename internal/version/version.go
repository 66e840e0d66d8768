package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/autodm/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/autodm/internal/version.Commit=abc123"
//
// Anything left empty is filled from the VCS data embedded by the Go toolchain.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

// Info is the resolved build information
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

var (
	resolved Info
	once     sync.Once
)

// Get returns the build information, resolving it on first use.
func Get() Info {
	once.Do(func() {
		resolved = resolve(Version, Commit, readSettings())
	})
	return resolved
}

// Full returns the full version string including commit
func Full() string {
	i := Get()
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}

// String implements fmt.Stringer
func (i Info) String() string {
	s := fmt.Sprintf("autodm %s (commit: %s, %s, %s)", i.Version, i.Commit, i.GoVersion, i.Platform)
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}

func readSettings() map[string]string {
	out := map[string]string{}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	for _, setting := range info.Settings {
		out[setting.Key] = setting.Value
	}
	return out
}

// resolve fills the blanks in version and commit from VCS build settings
func resolve(version, commit string, settings map[string]string) Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if rev := settings["vcs.revision"]; info.Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		info.Commit = rev
	}

	var built time.Time
	if ts := settings["vcs.time"]; ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			built = t
			info.BuildTime = t.UTC().Format(time.RFC3339)
		}
	}

	if info.Version == "" {
		if built.IsZero() {
			built = time.Now()
		}
		info.Version = "dev-" + built.Format("20060102")
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
}
