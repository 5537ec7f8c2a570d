package unitmenu

import (
	"runtime/debug"
)

// Version is the current version of the unitmenu tool
const Version = "0.3.0"

// BuildInfo contains detailed build information
type BuildInfo struct {
	// Version is the semantic version
	Version string
	// Revision is the VCS revision the binary was built from, when recorded
	Revision string
	// Modified indicates the working tree was dirty at build time
	Modified bool
}

// GetBuildInfo returns the current version and, when the binary carries
// embedded build metadata, the VCS revision it was built from.
func GetBuildInfo() BuildInfo {
	bi := BuildInfo{Version: Version}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			bi.Revision = setting.Value
		case "vcs.modified":
			bi.Modified = setting.Value == "true"
		}
	}
	return bi
}
