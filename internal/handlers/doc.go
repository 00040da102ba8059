// SPDX-License-Identifier: MPL-2.0

// Package handlers implements the window and query command handlers
// (spec §4.4–§4.6): Focus, Maximize, Resize, MoveDisplay, List, Get,
// Ping, Status, Version, and CheckPermissions. Each handler is built as
// an action.Handler closure bound to a backend.Backend, matching the
// dispatcher's generic per-variant shape; Set.Build assembles all of
// them into an action.Handlers for the CLI and daemon to share.
package handlers
