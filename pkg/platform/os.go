// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	// Windows is the GOOS value for Windows.
	Windows = "windows"
	// Darwin is the GOOS value for macOS.
	Darwin = "darwin"
	// Linux is the GOOS value for Linux.
	Linux = "linux"
)
