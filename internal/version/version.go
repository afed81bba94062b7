// Package version contains build metadata injected with -ldflags.
package version

// Version information for dclean
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the bare version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build metadata
func GetFullVersion() string {
	return Version + " (build: " + BuildDate + ", commit: " + GitCommit + ")"
}

// UserAgent identifies dclean to the Docker Engine API.
func UserAgent() string {
	return "dclean/" + Version
}
