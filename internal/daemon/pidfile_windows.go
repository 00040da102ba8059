// SPDX-License-Identifier: MPL-2.0

//go:build windows

package daemon

import "os"

// isAlive reports whether pid names a live process. Kept only for
// cross-compilation parity; cwm does not ship on Windows (pkg/platform) and
// this never receives the signal-0 treatment unix.Kill gives it there.
func isAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
