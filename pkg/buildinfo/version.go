// Package buildinfo holds the version stamped into goctave at build time:
//
//	go build -ldflags "-X github.com/matzehuels/goctave/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/matzehuels/goctave/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/goctave
package buildinfo

import "fmt"

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies goctave to package mirrors.
func UserAgent() string {
	return "goctave/" + Version
}
