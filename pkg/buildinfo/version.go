// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/storyline/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/storyline/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/storyline/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Rendered artifacts carry [Short] as their generator, and cached artifacts
// are keyed by [Version] so an upgrade never serves output of an older build.
package buildinfo

import "fmt"

// Name is the program name stamped into artifacts.
const Name = "storyline"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns "storyline <version>", with the abbreviated commit appended
// when one was set.
func Short() string {
	s := Name + " " + Version
	if Commit != "" && Commit != "none" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		s += " (" + c + ")"
	}
	return s
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
