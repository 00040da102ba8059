// SPDX-License-Identifier: MPL-2.0

// Package spotlight generates and manages the minimal macOS .app bundles
// that let Spotlight (or Launchpad) invoke cwm with a fixed set of
// arguments, e.g. "Focus Safari.app" running `cwm focus Safari`.
//
// Bundle structure:
//   - <name>.app/Contents/Info.plist    bundle metadata (CFBundleExecutable, etc.)
//   - <name>.app/Contents/MacOS/<name>  a shell wrapper script invoking cwm
//
// Icon rendering (producing a .icns from an image) is out of scope; a
// generated bundle simply omits CFBundleIconFile and macOS falls back to
// a generic app icon.
package spotlight

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"howett.net/plist"
)

// BundleSuffix is the standard macOS application bundle suffix.
const BundleSuffix = ".app"

// nameRegex restricts bundle display names to characters safe for a
// filesystem path component and a shell wrapper script.
var nameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 _-]*$`)

// Bundle describes one generated .app wrapper.
type Bundle struct {
	// Name is the bundle's display name, e.g. "Focus Safari".
	Name string
	// Args are the cwm CLI arguments the wrapper invokes, e.g.
	// []string{"focus", "Safari"}.
	Args []string
}

// infoPlist is the subset of Info.plist keys cwm's generated bundles set.
type infoPlist struct {
	CFBundleName          string `plist:"CFBundleName"`
	CFBundleDisplayName   string `plist:"CFBundleDisplayName"`
	CFBundleIdentifier    string `plist:"CFBundleIdentifier"`
	CFBundleExecutable    string `plist:"CFBundleExecutable"`
	CFBundlePackageType   string `plist:"CFBundlePackageType"`
	CFBundleShortVersion  string `plist:"CFBundleShortVersionString"`
	LSUIElement           bool   `plist:"LSUIElement"`
	LSMinimumSystemVer    string `plist:"LSMinimumSystemVersion"`
	NSHighResolutionCapab bool   `plist:"NSHighResolutionCapable"`
}

// ValidateName reports whether name is safe to use as a bundle's
// filesystem name and wrapper-script identifier.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("spotlight bundle name %q must start with a letter and contain only letters, digits, spaces, '-' or '_'", name)
	}
	return nil
}

// Generate writes a new .app bundle named b.Name under dir, wrapping a
// call to cwmPath with b.Args. dir is typically ~/Applications (the
// per-user Applications folder Spotlight indexes without elevation).
func Generate(dir string, b Bundle, cwmPath string) (string, error) {
	if err := ValidateName(b.Name); err != nil {
		return "", err
	}

	bundlePath := filepath.Join(dir, b.Name+BundleSuffix)
	macOSDir := filepath.Join(bundlePath, "Contents", "MacOS")
	if err := os.MkdirAll(macOSDir, 0o755); err != nil {
		return "", fmt.Errorf("creating bundle directories: %w", err)
	}

	execName := execSafeName(b.Name)
	info := infoPlist{
		CFBundleName:          b.Name,
		CFBundleDisplayName:   b.Name,
		CFBundleIdentifier:    "cwm.spotlight." + execName,
		CFBundleExecutable:    execName,
		CFBundlePackageType:   "APPL",
		CFBundleShortVersion:  "1.0",
		LSUIElement:           true,
		LSMinimumSystemVer:    "10.13",
		NSHighResolutionCapab: true,
	}
	plistData, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	if err != nil {
		return "", fmt.Errorf("encoding Info.plist: %w", err)
	}
	plistPath := filepath.Join(bundlePath, "Contents", "Info.plist")
	if err := os.WriteFile(plistPath, plistData, 0o644); err != nil {
		return "", fmt.Errorf("writing Info.plist: %w", err)
	}

	script := wrapperScript(cwmPath, b.Args)
	scriptPath := filepath.Join(macOSDir, execName)
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing wrapper script: %w", err)
	}

	return bundlePath, nil
}

// wrapperScript builds a small shell script that execs cwmPath with
// args, shell-quoting each one so names with spaces survive.
func wrapperScript(cwmPath string, args []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("exec ")
	b.WriteString(shellQuote(cwmPath))
	for _, a := range args {
		b.WriteString(" ")
		b.WriteString(shellQuote(a))
	}
	b.WriteString(" \"$@\"\n")
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// execSafeName collapses spaces so the bundle's CFBundleExecutable is a
// single filesystem-safe token.
func execSafeName(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

// List returns the names of every cwm-generated .app bundle found
// directly under dir (identified by the presence of our
// "cwm.spotlight." bundle identifier prefix, not merely the .app
// suffix, so unrelated applications are never listed or touched).
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), BundleSuffix) {
			continue
		}
		plistPath := filepath.Join(dir, entry.Name(), "Contents", "Info.plist")
		raw, err := os.ReadFile(plistPath)
		if err != nil {
			continue
		}
		var info infoPlist
		if err := plist.Unmarshal(raw, &info); err != nil {
			continue
		}
		if strings.HasPrefix(info.CFBundleIdentifier, "cwm.spotlight.") {
			names = append(names, strings.TrimSuffix(entry.Name(), BundleSuffix))
		}
	}
	return names, nil
}

// Remove deletes the named bundle from dir. It refuses to remove
// anything that is not a cwm-generated bundle, so a typo can't delete
// an unrelated user application.
func Remove(dir, name string) error {
	bundlePath := filepath.Join(dir, name+BundleSuffix)
	plistPath := filepath.Join(bundlePath, "Contents", "Info.plist")
	raw, err := os.ReadFile(plistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no spotlight bundle named %q in %s", name, dir)
		}
		return fmt.Errorf("reading %s: %w", plistPath, err)
	}
	var info infoPlist
	if err := plist.Unmarshal(raw, &info); err != nil {
		return fmt.Errorf("parsing %s: %w", plistPath, err)
	}
	if !strings.HasPrefix(info.CFBundleIdentifier, "cwm.spotlight.") {
		return fmt.Errorf("%s is not a cwm-generated bundle, refusing to remove", bundlePath)
	}
	if err := os.RemoveAll(bundlePath); err != nil {
		return fmt.Errorf("removing %s: %w", bundlePath, err)
	}
	return nil
}
