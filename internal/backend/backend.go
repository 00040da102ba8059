// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"context"
	"errors"

	"cwm/internal/model"
)

// Sentinel errors a Backend implementation returns so handlers can
// translate them into the action-layer taxonomy (spec §7) without
// depending on any backend-specific error type.
var (
	// ErrNoWindow means the app exists but currently owns no window —
	// expected right after a launch, before the first window appears.
	ErrNoWindow = errors.New("backend: app has no window")
	// ErrAppNotFound means the backend has no running process by that
	// exact name. Handlers translate it to app-not-found; neither the
	// darwin backend nor Mock returns it, and the fuzzy matcher never
	// touches the backend directly.
	ErrAppNotFound = errors.New("backend: app not found")
	// ErrPermissionDenied means the OS withheld accessibility/automation
	// permission for the calling process.
	ErrPermissionDenied = errors.New("backend: permission denied")
	// ErrNoFocusedWindow means no window is currently focused (Get with
	// target=focused when nothing owns key focus).
	ErrNoFocusedWindow = errors.New("backend: no focused window")
)

// Backend is the small surface the action handlers depend on for live
// window/display state (spec §1 "accessibility backend"). It never
// resolves queries itself — the matcher and display resolver operate on
// the snapshots it returns.
type Backend interface {
	// ListApps returns every running application that owns at least one
	// window, with Titles populated only when detailed is true.
	ListApps(ctx context.Context, detailed bool) ([]model.AppInfo, error)

	// MainWindow returns app's main (frontmost owned) window. Returns
	// ErrNoWindow if the app currently owns none.
	MainWindow(ctx context.Context, app model.AppInfo) (model.Window, error)

	// FocusWindow raises app's main window and activates the app.
	FocusWindow(ctx context.Context, app model.AppInfo) error

	// MoveResize sets w's frame to rect, applying size before position
	// as spec §4.4 requires so backends that reflow on resize settle
	// before being repositioned.
	MoveResize(ctx context.Context, w model.Window, rect model.Rect) error

	// LaunchApp asks the OS to start the named application. It does not
	// wait for a window to appear, and the handlers that call it return
	// a Launched result right away without waiting either.
	LaunchApp(ctx context.Context, name string) error

	// ListDisplays returns every connected display.
	ListDisplays(ctx context.Context) ([]model.Display, error)

	// FocusedWindow returns the app and window currently holding key
	// focus. Returns ErrNoFocusedWindow if nothing is focused.
	FocusedWindow(ctx context.Context) (model.AppInfo, model.Window, error)

	// CheckPermissions reports whether the process holds the
	// accessibility/automation permissions it needs. When prompt is
	// true the OS may surface a permission dialog as a side effect.
	CheckPermissions(ctx context.Context, prompt bool) (bool, error)
}
