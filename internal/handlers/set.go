// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"cwm/internal/action"
	"cwm/internal/backend"
)

// Set holds the dependencies every window/query/system handler needs and
// builds the action.Handlers the dispatcher runs. The external-
// collaborator commands (daemon, config, spotlight, install, uninstall,
// update, record_shortcut) are wired from their own packages, not here —
// this Set only covers the core 30% "command handlers" component.
type Set struct {
	Backend backend.Backend
}

// New returns a Set bound to b.
func New(b backend.Backend) *Set {
	return &Set{Backend: b}
}

// Build assembles the action.Handlers fields this Set implements. The
// caller (cmd/cwm's root.go) merges the result with the
// external-collaborator handlers before constructing the Dispatcher.
func (s *Set) Build() action.Handlers {
	return action.Handlers{
		Focus:            s.Focus,
		Maximize:         s.Maximize,
		Resize:           s.Resize,
		MoveDisplay:      s.MoveDisplay,
		List:             s.List,
		Get:              s.Get,
		Ping:             s.Ping,
		Status:           s.Status,
		Version:          s.Version,
		CheckPermissions: s.CheckPermissions,
	}
}
