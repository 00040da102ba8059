// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrAlreadyRunning is returned by claimPID when a live daemon already
// holds the pidfile (spec §4.9.4 "PID and socket lifecycle").
var ErrAlreadyRunning = errors.New("daemon: already running")

// readPID reads and parses path's contents as a bare decimal PID. A
// missing file is reported via os.IsNotExist on the returned error.
func readPID(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("malformed pidfile %s: %w", path, err)
	}
	return pid, nil
}

// claimPID writes the current process's PID to path, first checking for
// and cleaning up a stale pidfile left by a daemon that did not exit
// cleanly. Returns ErrAlreadyRunning if another live daemon owns it.
func claimPID(path string) error {
	if existing, err := readPID(path); err == nil {
		if isAlive(existing) {
			return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, existing)
		}
		// Stale pidfile from a daemon that crashed or was killed
		// without cleanup; safe to reclaim.
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}

// releasePID removes path, ignoring a missing file.
func releasePID(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
