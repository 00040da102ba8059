// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package daemon

import "golang.org/x/sys/unix"

// isAlive reports whether pid names a live process, using signal 0 (no
// signal actually delivered, just existence/permission checked) rather
// than a process-table scan.
func isAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return unix.Kill(pid, 0) == nil
}
