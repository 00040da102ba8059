// SPDX-License-Identifier: MPL-2.0

package action

import "cwm/internal/display"

// Command is the closed tagged union of every operation any front-end
// can issue. Each variant carries all data needed to execute it; there
// are no implicit globals. The command() marker method keeps the union
// closed to this package.
type Command interface {
	// MethodName is the stable string used for JSON-RPC method
	// correlation and log lines.
	MethodName() string
	// IsInteractive reports whether this command requires a terminal
	// (stdin prompts, TTY output) and therefore cannot run over IPC or
	// from a hotkey.
	IsInteractive() bool

	command()
}

// ResizeUnit names the unit a ResizeTarget was expressed in.
type ResizeUnit string

const (
	ResizeUnitPercent ResizeUnit = "percent"
	ResizeUnitPixel   ResizeUnit = "pixel"
	ResizeUnitPoint   ResizeUnit = "point"
)

// ResizeTarget is the parsed form of the CLI --to flag / JSON-RPC
// resize.to parameter: a percent (1-100), or a pixel/point size where
// Height of 0 means "infer from the display's aspect ratio".
type ResizeTarget struct {
	Unit    ResizeUnit
	Percent int
	Width   int
	Height  int
}

// GetTargetKind distinguishes the two forms the `get` command's target
// parameter may take.
type GetTargetKind string

const (
	GetTargetFocused GetTargetKind = "focused"
	GetTargetWindow  GetTargetKind = "window"
)

// GetTarget is the parsed target of a Get command.
type GetTarget struct {
	Kind GetTargetKind
	// Apps is populated only when Kind == GetTargetWindow.
	Apps []string
}

// ListResource names what a List command enumerates.
type ListResource string

const (
	ListResourceApps     ListResource = "apps"
	ListResourceDisplays ListResource = "displays"
	ListResourceAliases  ListResource = "aliases"
)

// FocusCommand brings the first matching app's main window forward.
type FocusCommand struct {
	Apps   []string
	Launch *bool
}

func (FocusCommand) MethodName() string  { return "focus" }
func (FocusCommand) IsInteractive() bool { return false }
func (FocusCommand) command()            {}

// MaximizeCommand sets a window's origin and size to its display's
// visible rect. An empty Apps list targets the currently focused window.
type MaximizeCommand struct {
	Apps   []string
	Launch *bool
}

func (MaximizeCommand) MethodName() string  { return "maximize" }
func (MaximizeCommand) IsInteractive() bool { return false }
func (MaximizeCommand) command()            {}

// ResizeCommand sets a window's size (and re-centers it) per To.
// Overflow, when false, clamps the computed size to the visible rect.
type ResizeCommand struct {
	Apps     []string
	To       ResizeTarget
	Overflow bool
	Launch   *bool
}

func (ResizeCommand) MethodName() string  { return "resize" }
func (ResizeCommand) IsInteractive() bool { return false }
func (ResizeCommand) command()            {}

// MoveDisplayCommand moves a window to Target, scaling its position and
// size proportionally.
type MoveDisplayCommand struct {
	Apps   []string
	Target display.Target
	Launch *bool
}

func (MoveDisplayCommand) MethodName() string  { return "move_display" }
func (MoveDisplayCommand) IsInteractive() bool { return false }
func (MoveDisplayCommand) command()            {}

// ListCommand enumerates apps, displays, or aliases.
type ListCommand struct {
	Resource ListResource
	Detailed bool
}

func (ListCommand) MethodName() string  { return "list" }
func (ListCommand) IsInteractive() bool { return false }
func (ListCommand) command()            {}

// GetCommand reports the focused app/window/display, or resolves an app
// list like a window command would without acting on it.
type GetCommand struct {
	Target GetTarget
}

func (GetCommand) MethodName() string  { return "get" }
func (GetCommand) IsInteractive() bool { return false }
func (GetCommand) command()            {}

// PingCommand is a liveness check; it always succeeds with "pong".
type PingCommand struct{}

func (PingCommand) MethodName() string  { return "ping" }
func (PingCommand) IsInteractive() bool { return false }
func (PingCommand) command()            {}

// StatusCommand reports whether the daemon is running and its file
// locations.
type StatusCommand struct{}

func (StatusCommand) MethodName() string  { return "status" }
func (StatusCommand) IsInteractive() bool { return false }
func (StatusCommand) command()            {}

// VersionCommand reports build-time version metadata.
type VersionCommand struct{}

func (VersionCommand) MethodName() string  { return "version" }
func (VersionCommand) IsInteractive() bool { return false }
func (VersionCommand) command()            {}

// CheckPermissionsCommand reports whether the accessibility backend has
// the permissions it needs, optionally prompting the OS dialog.
type CheckPermissionsCommand struct {
	Prompt bool
}

func (CheckPermissionsCommand) MethodName() string  { return "check_permissions" }
func (CheckPermissionsCommand) IsInteractive() bool { return false }
func (CheckPermissionsCommand) command()            {}

// RecordShortcutCommand drives the interactive "press the keys you want
// to bind" flow. CLI-only: it is rejected over IPC and from a hotkey.
type RecordShortcutCommand struct {
	Name   string
	Action string
}

func (RecordShortcutCommand) MethodName() string  { return "record_shortcut" }
func (RecordShortcutCommand) IsInteractive() bool { return true }
func (RecordShortcutCommand) command()            {}

// ExternalSub is the shared shape of the six "external collaborator"
// command families (daemon, config, spotlight, install, uninstall,
// update): a sub-command
// name plus whatever string-keyed parameters it needs (e.g. config's
// set.key/set.value).
type ExternalSub struct {
	Sub    string
	Params map[string]string
}

// DaemonCommand controls the background daemon process (start, stop,
// restart, status, reload, or foreground). Sub=="foreground" is interactive: it
// runs the daemon attached to the invoking terminal instead of detaching.
type DaemonCommand struct {
	ExternalSub
}

func (DaemonCommand) MethodName() string    { return "daemon" }
func (c DaemonCommand) IsInteractive() bool { return c.Sub == "foreground" }
func (DaemonCommand) command()              {}

// ConfigCommand reads or edits the on-disk configuration. Sub is one of
// show/path/verify/default/set/reset; set requires Params["key"] and
// Params["value"].
type ConfigCommand struct {
	ExternalSub
}

func (ConfigCommand) MethodName() string  { return "config" }
func (ConfigCommand) IsInteractive() bool { return false }
func (ConfigCommand) command()            {}

// SpotlightCommand manages the generated .app bundles that invoke the
// CLI from Spotlight.
type SpotlightCommand struct {
	ExternalSub
}

func (SpotlightCommand) MethodName() string  { return "spotlight" }
func (SpotlightCommand) IsInteractive() bool { return false }
func (SpotlightCommand) command()            {}

// InstallCommand installs a local release archive (Sub run), compares
// the running version with a target (check), or shows or sets the
// release channel (channel). Sub=="interactive"
// only marks the command as interactive; the CLI's install handler has
// no interactive sub-command.
type InstallCommand struct {
	ExternalSub
}

func (InstallCommand) MethodName() string    { return "install" }
func (c InstallCommand) IsInteractive() bool { return c.Sub == "interactive" }
func (InstallCommand) command()              {}

// UninstallCommand stops a running daemon and removes the install
// metadata (Sub run), reports whether cwm is installed (check), or shows
// the release channel (channel). The installed binary itself is not
// deleted.
type UninstallCommand struct {
	ExternalSub
}

func (UninstallCommand) MethodName() string  { return "uninstall" }
func (UninstallCommand) IsInteractive() bool { return false }
func (UninstallCommand) command()            {}

// UpdateCommand applies a local release artifact (Sub run), rolls back
// (rollback), compares the running version with a target (check), or
// shows or sets the release channel (channel). Sub=="prompt" only marks the command as interactive; the
// CLI's update handler has no prompt sub-command.
type UpdateCommand struct {
	ExternalSub
}

func (UpdateCommand) MethodName() string    { return "update" }
func (c UpdateCommand) IsInteractive() bool { return c.Sub == "prompt" }
func (UpdateCommand) command()              {}
