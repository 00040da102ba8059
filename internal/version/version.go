// SPDX-License-Identifier: MPL-2.0

// Package version holds the build-time metadata `version` reports,
// mirroring the ldflags-injected vars the CLI root command has always
// used, moved here so internal/handlers can read them without an
// import cycle through cmd/cwm.
package version

var (
	// Version is the semantic version, set via -ldflags.
	Version = "dev"
	// Commit is the git commit hash, set via -ldflags.
	Commit = "unknown"
	// BuildDate is the build timestamp, set via -ldflags.
	BuildDate = "unknown"
)

// Dirty reports whether the working tree had uncommitted changes at
// build time, set via -ldflags ("true"/"false").
var Dirty = "unknown"
