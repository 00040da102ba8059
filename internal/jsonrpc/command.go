// SPDX-License-Identifier: MPL-2.0

package jsonrpc

import (
	"encoding/json"
	"fmt"

	"cwm/internal/action"
	"cwm/internal/display"
)

// ToCommand maps a parsed Request to the action.Command it represents
// (spec §4.8): every method has an authoritative params shape, enforced
// here with the same structured-string parsers (internal/action,
// internal/display) the CLI uses, so a parse failure reads identically
// from either front-end.
func ToCommand(req Request) (action.Command, *action.Error) {
	switch req.Method {
	case "focus":
		var p struct {
			App    stringOrSlice `json:"app"`
			Launch *bool         `json:"launch,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		if len(p.App) == 0 {
			return nil, invalidArgs(fmt.Errorf("focus requires \"app\""))
		}
		return action.FocusCommand{Apps: p.App, Launch: p.Launch}, nil

	case "maximize":
		var p struct {
			App    stringOrSlice `json:"app,omitempty"`
			Launch *bool         `json:"launch,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		return action.MaximizeCommand{Apps: p.App, Launch: p.Launch}, nil

	case "resize":
		var p struct {
			App      stringOrSlice `json:"app,omitempty"`
			To       string        `json:"to"`
			Overflow bool          `json:"overflow,omitempty"`
			Launch   *bool         `json:"launch,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		if p.To == "" {
			return nil, invalidArgs(fmt.Errorf("resize requires \"to\""))
		}
		target, err := action.ParseResizeTarget(p.To)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.ResizeCommand{Apps: p.App, To: target, Overflow: p.Overflow, Launch: p.Launch}, nil

	case "move_display":
		var p struct {
			App    stringOrSlice `json:"app,omitempty"`
			Target string        `json:"target"`
			Launch *bool         `json:"launch,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		if p.Target == "" {
			return nil, invalidArgs(fmt.Errorf("move_display requires \"target\""))
		}
		target, err := display.ParseTarget(p.Target)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.MoveDisplayCommand{Apps: p.App, Target: target, Launch: p.Launch}, nil

	case "list":
		var p struct {
			Resource string `json:"resource"`
			Detailed bool   `json:"detailed,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		resource := action.ListResource(p.Resource)
		switch resource {
		case action.ListResourceApps, action.ListResourceDisplays, action.ListResourceAliases:
		default:
			return nil, invalidArgs(fmt.Errorf("list requires \"resource\" to be one of apps, displays, aliases, got %q", p.Resource))
		}
		return action.ListCommand{Resource: resource, Detailed: p.Detailed}, nil

	case "get":
		var p struct {
			Target string        `json:"target"`
			App    stringOrSlice `json:"app,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		switch p.Target {
		case string(action.GetTargetFocused):
			return action.GetCommand{Target: action.GetTarget{Kind: action.GetTargetFocused}}, nil
		case string(action.GetTargetWindow):
			if len(p.App) == 0 {
				return nil, invalidArgs(fmt.Errorf("get target=window requires \"app\""))
			}
			return action.GetCommand{Target: action.GetTarget{Kind: action.GetTargetWindow, Apps: p.App}}, nil
		default:
			return nil, invalidArgs(fmt.Errorf("get requires \"target\" to be \"focused\" or \"window\", got %q", p.Target))
		}

	case "ping":
		return action.PingCommand{}, nil

	case "status":
		return action.StatusCommand{}, nil

	case "version":
		return action.VersionCommand{}, nil

	case "check_permissions":
		var p struct {
			Prompt bool `json:"prompt,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		return action.CheckPermissionsCommand{Prompt: p.Prompt}, nil

	case "record_shortcut":
		// Interactive: the dispatcher rejects it for non-CLI callers via
		// Command.IsInteractive(), but a Command must still be built so
		// the dispatcher can apply that rejection uniformly.
		var p struct {
			Name   string `json:"name,omitempty"`
			Action string `json:"action,omitempty"`
		}
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, invalidArgs(err)
		}
		return action.RecordShortcutCommand{Name: p.Name, Action: p.Action}, nil

	case "daemon":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.DaemonCommand{ExternalSub: sub}, nil

	case "config":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.ConfigCommand{ExternalSub: sub}, nil

	case "spotlight":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.SpotlightCommand{ExternalSub: sub}, nil

	case "install":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.InstallCommand{ExternalSub: sub}, nil

	case "uninstall":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.UninstallCommand{ExternalSub: sub}, nil

	case "update":
		sub, err := externalSub(req.Params)
		if err != nil {
			return nil, invalidArgs(err)
		}
		return action.UpdateCommand{ExternalSub: sub}, nil

	default:
		return nil, invalidArgs(fmt.Errorf("unknown method: %s", req.Method))
	}
}

// unmarshalParams decodes req.Params into dst, tolerating absent params
// (an empty object) since most methods have none or all-optional
// fields.
func unmarshalParams(params json.RawMessage, dst any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// externalSub decodes the shared {command, ...} shape of the six
// external-collaborator command families: "command" names the
// sub-operation, every other string-valued field becomes a Params
// entry (e.g. config's set.key/set.value).
func externalSub(params json.RawMessage) (action.ExternalSub, error) {
	if len(params) == 0 {
		return action.ExternalSub{}, fmt.Errorf("missing required param \"command\"")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(params, &raw); err != nil {
		return action.ExternalSub{}, fmt.Errorf("invalid params: %w", err)
	}

	cmdRaw, ok := raw["command"]
	if !ok {
		return action.ExternalSub{}, fmt.Errorf("missing required param \"command\"")
	}
	var sub string
	if err := json.Unmarshal(cmdRaw, &sub); err != nil {
		return action.ExternalSub{}, fmt.Errorf("\"command\" must be a string: %w", err)
	}

	out := action.ExternalSub{Sub: sub, Params: map[string]string{}}
	for k, v := range raw {
		if k == "command" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out.Params[k] = s
		}
	}
	return out, nil
}

func invalidArgs(err error) *action.Error {
	return action.NewError(action.CodeInvalidArgs, err.Error())
}
