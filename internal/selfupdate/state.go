// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"encoding/json"
	"fmt"
	"os"
)

// ChannelStable and ChannelBeta are the release channels install/update
// bookkeeping can record. cwm never fetches a channel's releases itself
// (no network fetch, per the package doc); the channel name only
// records which one the user asked `install channel`/`update channel`
// to remember for next time.
const (
	ChannelStable = "stable"
	ChannelBeta   = "beta"
)

// State is the on-disk record of the installed binary's version,
// release channel, and rollback target. It lives at the path returned
// by config.VersionPath(), written by `install run`/`update run` (also
// by `update run --rollback` and by `install channel`/`update channel`
// given a name), read by the channel subcommands and `uninstall check`,
// and removed by `uninstall run`.
type State struct {
	Version         string `json:"version"`
	Channel         string `json:"channel"`
	PreviousVersion string `json:"previous_version,omitempty"`
}

// LoadState reads the install-state file at path. A missing file is not
// an error: it returns a State with Channel set to ChannelStable and no
// other field set, since `install run` has never completed yet.
func LoadState(path string) (*State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Channel: ChannelStable}, nil
		}
		return nil, fmt.Errorf("reading install state: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("parsing install state: %w", err)
	}
	if st.Channel == "" {
		st.Channel = ChannelStable
	}
	return &st, nil
}

// SaveState writes st to path as indented JSON.
func SaveState(path string, st *State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling install state: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing install state: %w", err)
	}
	return nil
}

// RecordInstall updates the state file to reflect a freshly installed
// or updated version, preserving the previous version as a rollback
// marker so a future `update run --rollback` (or a support request)
// knows what to revert to.
func RecordInstall(path, newVersion, channel string) error {
	st, err := LoadState(path)
	if err != nil {
		return err
	}
	if channel == "" {
		channel = st.Channel
	}
	st.PreviousVersion = st.Version
	st.Version = newVersion
	st.Channel = channel
	return SaveState(path, st)
}

// Rollback swaps Version and PreviousVersion in the state file,
// returning the version that is now current after the swap. It is the
// bookkeeping half of a rollback; the caller still has to apply the
// previous version's binary via ApplyLocal.
func Rollback(path string) (string, error) {
	st, err := LoadState(path)
	if err != nil {
		return "", err
	}
	if st.PreviousVersion == "" {
		return "", fmt.Errorf("no previous version recorded to roll back to")
	}
	st.Version, st.PreviousVersion = st.PreviousVersion, st.Version
	if err := SaveState(path, st); err != nil {
		return "", err
	}
	return st.Version, nil
}
