package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var releaseVersion string

// Version reports the module version for tagged installs
// (go install github.com/broady/mockql/cmd/mockql@v0.1.0). Source builds
// report "devel-<VERSION>", plus "+<rev>" when the binary was stamped with a
// VCS revision and "-dirty" when the tree had local changes.
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return versionFrom(strings.TrimSpace(releaseVersion), info)
}

func versionFrom(release string, info *debug.BuildInfo) string {
	if info == nil {
		return release
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	v := "devel-" + release
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) >= 7 {
		v += "+" + rev[:7]
		if dirty {
			v += "-dirty"
		}
	}
	return v
}
