// SPDX-License-Identifier: MPL-2.0

package daemon

import "fmt"

// Status reports whether a daemon is currently running according to
// pidPath, resolving the same pidfile-plus-liveness-check claimPID uses
// internally. A missing or stale pidfile is reported as not running,
// never as an error.
func Status(pidPath string) (pid int, running bool, err error) {
	existing, readErr := readPID(pidPath)
	if readErr != nil {
		return 0, false, nil
	}
	return existing, isAlive(existing), nil
}

// Stop signals a running daemon to shut down by sending it SIGTERM, one
// of the signals `daemon foreground` listens for via
// signal.NotifyContext. It does not wait for the process to exit.
func Stop(pidPath string) error {
	pid, running, err := Status(pidPath)
	if err != nil {
		return err
	}
	if !running {
		return fmt.Errorf("daemon is not running")
	}
	return terminate(pid)
}
