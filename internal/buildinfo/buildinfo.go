// Package buildinfo resolves the version reported by qcut.
package buildinfo

import "runtime/debug"

// Version is set at link time with
// -ldflags "-X github.com/chojs23/qcut/internal/buildinfo.Version=v1.0.0".
var Version = "dev"

var readBuildInfo = debug.ReadBuildInfo

// String returns the link-time version, else the module version recorded by
// `go install`, else "dev".
func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		switch v := info.Main.Version; v {
		case "", "(devel)":
		default:
			return v
		}
	}
	return Version
}
