// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes the runtime.GOOS string literals cwm's config path
// resolution switches on, so "darwin"/"windows"/"linux" never appear as
// scattered magic strings.
package platform
