// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// ErrArtifactNotFound is returned by ApplyLocal when the
// given archive or checksums file does not exist on disk.
var ErrArtifactNotFound = errors.New("update artifact not found")

// CheckLocal compares currentVersion against targetVersion using only
// local semver comparison — no network call. This is the cwm-specific
// substitute for Updater.Check's GitHub-API-driven flow: the CLI never
// fetches release metadata itself (that stays a documented non-goal),
// so "is an upgrade available" can only ever be answered relative to a
// version the caller already knows about (e.g. from an artifact's own
// filename).
func CheckLocal(currentVersion, targetVersion string) (*UpgradeCheck, error) {
	currentNorm, err := normalizeVersion(currentVersion)
	if err != nil {
		return nil, fmt.Errorf("current version: %w", err)
	}
	targetNorm, err := normalizeVersion(targetVersion)
	if err != nil {
		return nil, fmt.Errorf("target version: %w", err)
	}

	if semver.Compare(currentNorm, targetNorm) >= 0 {
		return &UpgradeCheck{
			CurrentVersion: currentVersion,
			LatestVersion:  targetVersion,
			Message:        "Already up to date.",
		}, nil
	}

	return &UpgradeCheck{
		CurrentVersion:   currentVersion,
		LatestVersion:    targetVersion,
		UpgradeAvailable: true,
		Message:          fmt.Sprintf("Upgrade available: %s -> %s", currentVersion, targetVersion),
	}, nil
}

// ApplyLocal verifies archivePath against the matching entry in
// checksumsPath, extracts the cwm binary, and atomically replaces the
// currently running executable with it. It never touches the network:
// both files must already be present on disk, making it the
// non-networked counterpart to Apply (which downloads them from a
// GitHub release first).
func ApplyLocal(archivePath, checksumsPath string) error {
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArtifactNotFound, archivePath)
		}
		return err
	}
	checksumsFile, err := os.Open(checksumsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArtifactNotFound, checksumsPath)
		}
		return err
	}
	defer func() { _ = checksumsFile.Close() }()

	entries, err := ParseChecksums(checksumsFile)
	if err != nil {
		return fmt.Errorf("parsing checksums: %w", err)
	}

	archiveName := filepath.Base(archivePath)
	expectedHash, err := FindChecksum(entries, archiveName)
	if err != nil {
		return fmt.Errorf("finding checksum for %s: %w", archiveName, err)
	}

	if err := VerifyFile(archivePath, expectedHash); err != nil {
		return fmt.Errorf("verifying archive checksum: %w", err)
	}

	execPath, err := resolveExecPath()
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}
	targetDir := filepath.Dir(execPath)

	tempBinaryPath, err := extractBinaryFromArchive(archivePath, targetDir)
	if err != nil {
		return fmt.Errorf("extracting binary from archive: %w", err)
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tempBinaryPath)
		}
	}()

	info, err := os.Stat(execPath)
	if err != nil {
		return fmt.Errorf("reading original binary permissions: %w", err)
	}
	if err := os.Chmod(tempBinaryPath, info.Mode()); err != nil {
		return fmt.Errorf("setting binary permissions: %w", err)
	}
	if err := os.Rename(tempBinaryPath, execPath); err != nil {
		return fmt.Errorf("replacing binary: %w", err)
	}
	renamed = true

	return nil
}
