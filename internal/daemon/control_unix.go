// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package daemon

import "golang.org/x/sys/unix"

// terminate sends SIGTERM to pid.
func terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}
