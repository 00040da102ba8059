// SPDX-License-Identifier: MPL-2.0

// Package selfupdate implements self-upgrade functionality for the cwm CLI.
// It provides GitHub Releases API integration, install method detection,
// SHA256 checksum verification, and atomic binary replacement, plus a
// local-artifact-only path (no network fetch) for installing, updating,
// and rolling back from an archive the caller already has on disk.
//
// The package is organized into these concerns:
//   - github.go: HTTP client for the GitHub Releases API (list, get-by-tag, download)
//   - detect.go: Install method detection (Script, Homebrew, GoInstall, Unknown)
//   - checksum.go: SHA256 checksum parsing and file verification
//   - selfupdate.go: Updater type that composes the above for end-to-end upgrade flow
//   - local.go: CheckLocal/ApplyLocal, the network-free counterparts used by the CLI
//   - state.go: on-disk channel/rollback bookkeeping for install/update/uninstall
package selfupdate
