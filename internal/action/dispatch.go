// SPDX-License-Identifier: MPL-2.0

package action

import (
	"context"
	"fmt"
)

// Handler is the shape every command handler implements: given a
// context (for cancellation/SOCKET_SHOULD_STOP plumbing through
// internal/retry), the command, and the execution context, produce
// exactly one Result or Error.
type Handler[C Command] func(ctx context.Context, cmd C, ec ExecutionContext) (*Result, *Error)

// Handlers collects one Handler per Command variant. The dispatcher is
// built once by cmd/cwm with every field populated and handed to
// internal/daemon for IPC and hotkeys; a nil field is a programming
// error surfaced as a general Error rather than a panic, so a
// partially-wired Handlers in a test only breaks the cases it exercises.
type Handlers struct {
	Focus            Handler[FocusCommand]
	Maximize         Handler[MaximizeCommand]
	Resize           Handler[ResizeCommand]
	MoveDisplay      Handler[MoveDisplayCommand]
	List             Handler[ListCommand]
	Get              Handler[GetCommand]
	Ping             Handler[PingCommand]
	Status           Handler[StatusCommand]
	Version          Handler[VersionCommand]
	CheckPermissions Handler[CheckPermissionsCommand]
	RecordShortcut   Handler[RecordShortcutCommand]
	Daemon           Handler[DaemonCommand]
	Config           Handler[ConfigCommand]
	Spotlight        Handler[SpotlightCommand]
	Install          Handler[InstallCommand]
	Uninstall        Handler[UninstallCommand]
	Update           Handler[UpdateCommand]
}

// Dispatcher is the only entry point front-ends call: every request,
// whatever its transport, is normalized to a Command and passed to
// Execute.
type Dispatcher struct {
	handlers Handlers
}

// NewDispatcher builds a Dispatcher from a fully (or partially, for
// tests) populated Handlers.
func NewDispatcher(h Handlers) *Dispatcher {
	return &Dispatcher{handlers: h}
}

// Execute implements spec §4.3: reject interactive commands from
// non-CLI callers, then dispatch to the handler keyed by the command's
// concrete type and return its result verbatim. No handler is ever
// called directly by a front-end; this is the sole call site.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command, ec ExecutionContext) (*Result, *Error) {
	if cmd.IsInteractive() && !ec.IsCLI {
		return nil, NewError(CodeInvalidArgs, "requires interactive input")
	}

	switch c := cmd.(type) {
	case FocusCommand:
		return call(ctx, d.handlers.Focus, c, ec)
	case MaximizeCommand:
		return call(ctx, d.handlers.Maximize, c, ec)
	case ResizeCommand:
		return call(ctx, d.handlers.Resize, c, ec)
	case MoveDisplayCommand:
		return call(ctx, d.handlers.MoveDisplay, c, ec)
	case ListCommand:
		return call(ctx, d.handlers.List, c, ec)
	case GetCommand:
		return call(ctx, d.handlers.Get, c, ec)
	case PingCommand:
		return call(ctx, d.handlers.Ping, c, ec)
	case StatusCommand:
		return call(ctx, d.handlers.Status, c, ec)
	case VersionCommand:
		return call(ctx, d.handlers.Version, c, ec)
	case CheckPermissionsCommand:
		return call(ctx, d.handlers.CheckPermissions, c, ec)
	case RecordShortcutCommand:
		return call(ctx, d.handlers.RecordShortcut, c, ec)
	case DaemonCommand:
		return call(ctx, d.handlers.Daemon, c, ec)
	case ConfigCommand:
		return call(ctx, d.handlers.Config, c, ec)
	case SpotlightCommand:
		return call(ctx, d.handlers.Spotlight, c, ec)
	case InstallCommand:
		return call(ctx, d.handlers.Install, c, ec)
	case UninstallCommand:
		return call(ctx, d.handlers.Uninstall, c, ec)
	case UpdateCommand:
		return call(ctx, d.handlers.Update, c, ec)
	default:
		return nil, NewError(CodeGeneral, fmt.Sprintf("unrecognized command type %T", cmd))
	}
}

func call[C Command](ctx context.Context, h Handler[C], cmd C, ec ExecutionContext) (*Result, *Error) {
	if h == nil {
		return nil, NewError(CodeGeneral, fmt.Sprintf("no handler registered for %s", cmd.MethodName()))
	}
	return h(ctx, cmd, ec)
}
