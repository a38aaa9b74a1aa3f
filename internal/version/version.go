// Package version holds the build version of draft-sim.
// Set it at build time with:
//
//	go build -ldflags "-X github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/version.Version=v0.3.0" ./cmd/draft-sim
package version

// Version defaults to "dev" for local builds.
var Version = "dev"

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}
