// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/streamshub/alignreport/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/streamshub/alignreport/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the multi-line form printed by `alignreport version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies the tool in generated reports, e.g. "alignreport/dev".
func UserAgent() string {
	return "alignreport/" + Version
}
