// Package version holds build information injected at link time with
// -ldflags "-X github.com/tinyzimmer/usersu/pkg/version.Version=...".
package version

// Version is the released version of usersu.
var Version = "dev"

// GitCommit is the commit usersu was built from.
var GitCommit = "unknown"
