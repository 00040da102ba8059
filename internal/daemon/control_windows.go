// SPDX-License-Identifier: MPL-2.0

//go:build windows

package daemon

import "os"

// terminate asks the OS to kill pid. Kept only for cross-compilation
// parity; cwm does not ship on Windows.
func terminate(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}
