// SPDX-License-Identifier: MPL-2.0

package shortcut

import (
	"fmt"
	"strings"

	"cwm/internal/action"
	"cwm/internal/display"
)

// Kind names which command family a parsed Action builds.
type Kind string

const (
	KindFocus       Kind = "focus"
	KindMaximize    Kind = "maximize"
	KindMoveDisplay Kind = "move_display"
	KindResize      Kind = "resize"
)

// Action is the parsed form of a compact shortcut-action string.
type Action struct {
	Kind   Kind
	Target display.Target     // populated for KindMoveDisplay
	Size   action.ResizeTarget // populated for KindResize
}

// Parse parses a shortcut-action string into an Action. Recognized
// forms: "focus", "maximize", "move_display:<target>", "resize:<size>".
func Parse(s string) (Action, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Action{}, fmt.Errorf("shortcut action must not be empty")
	}

	name, arg, hasArg := strings.Cut(trimmed, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "focus":
		if hasArg {
			return Action{}, fmt.Errorf("shortcut action %q: focus takes no target", s)
		}
		return Action{Kind: KindFocus}, nil

	case "maximize":
		if hasArg {
			return Action{}, fmt.Errorf("shortcut action %q: maximize takes no target", s)
		}
		return Action{Kind: KindMaximize}, nil

	case "move_display":
		if !hasArg || strings.TrimSpace(arg) == "" {
			return Action{}, fmt.Errorf("shortcut action %q: move_display requires a target", s)
		}
		target, err := display.ParseTarget(arg)
		if err != nil {
			return Action{}, fmt.Errorf("shortcut action %q: %w", s, err)
		}
		return Action{Kind: KindMoveDisplay, Target: target}, nil

	case "resize":
		if !hasArg || strings.TrimSpace(arg) == "" {
			return Action{}, fmt.Errorf("shortcut action %q: resize requires a size", s)
		}
		size, err := action.ParseResizeTarget(arg)
		if err != nil {
			return Action{}, fmt.Errorf("shortcut action %q: %w", s, err)
		}
		return Action{Kind: KindResize, Size: size}, nil

	default:
		return Action{}, fmt.Errorf("shortcut action %q: unknown action %q", s, name)
	}
}

// ToCommand builds the action.Command the parsed Action represents,
// given the app (empty for the apps-list-less forms) a shortcut binds
// to and whether to launch it on no match.
func (a Action) ToCommand(app string, launch *bool) (action.Command, error) {
	var apps []string
	if app != "" {
		apps = []string{app}
	}

	switch a.Kind {
	case KindFocus:
		if len(apps) == 0 {
			return nil, fmt.Errorf("focus shortcut requires an app")
		}
		return action.FocusCommand{Apps: apps, Launch: launch}, nil
	case KindMaximize:
		return action.MaximizeCommand{Apps: apps, Launch: launch}, nil
	case KindMoveDisplay:
		if len(apps) == 0 {
			return nil, fmt.Errorf("move_display shortcut requires an app")
		}
		return action.MoveDisplayCommand{Apps: apps, Target: a.Target, Launch: launch}, nil
	case KindResize:
		if len(apps) == 0 {
			return nil, fmt.Errorf("resize shortcut requires an app")
		}
		return action.ResizeCommand{Apps: apps, To: a.Size, Launch: launch}, nil
	default:
		return nil, fmt.Errorf("unknown shortcut action kind %q", a.Kind)
	}
}
