// Package version reports the archivectl build version.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/viewmim/archivectl/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Written by the linker.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// GetVersion returns the release version. Binaries installed with
// `go install` report their module version instead of "dev".
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetCommit returns the git commit the binary was built from, if known.
func GetCommit() string {
	return commit
}

// String returns the version with commit and build date when they are known.
func String() string {
	s := GetVersion()
	if commit != "" {
		s += fmt.Sprintf(" (commit %s", commit)
		if date != "" {
			s += ", built " + date
		}
		s += ")"
	}
	return s
}
