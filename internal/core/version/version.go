// Package version provides information about the build version of the binaries.
package version

// BuildInfo holds version information about a build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for service. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info(service string) BuildInfo {
	// Set via -ldflags "-X 'workshopdex/internal/core/version.version=v0.1.0'
	// -X 'workshopdex/internal/core/version.commit=abcd' -X 'workshopdex/internal/core/version.date=2026-10-01'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders the info on one line for CLI output
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
