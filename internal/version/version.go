// Package version provides build version information.
package version

var (
	// Version is the semantic version, set at build time via ldflags.
	Version = "dev"
	// Commit is the git commit hash, set at build time via ldflags.
	Commit = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return Version + " (" + Commit + ")"
}
