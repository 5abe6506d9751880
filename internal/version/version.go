// Package version holds build-time version metadata for the mermaid-lint
// CLI. These variables can be overridden at build time via -ldflags.
package version

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String renders a single-line version string, appending commit/date when
// they were set at build time.
func String() string {
	s := Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
