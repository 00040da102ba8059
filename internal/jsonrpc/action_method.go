// SPDX-License-Identifier: MPL-2.0

package jsonrpc

import (
	"fmt"

	"cwm/internal/action"
	"cwm/internal/shortcut"
)

// ToShortcutCommand handles the special-cased "action" method (spec
// §4.9 bullet 3): params.action is a compact shortcut-action string
// (the same grammar config shortcuts and app rules use), optionally
// paired with params.app. internal/daemon calls this instead of
// ToCommand when it sees method == "action", then dispatches the result
// exactly as it would a hotkey press.
func ToShortcutCommand(params []byte) (action.Command, *action.Error) {
	var p struct {
		Action string `json:"action"`
		App    string `json:"app,omitempty"`
		Launch *bool  `json:"launch,omitempty"`
	}
	if err := unmarshalParams(params, &p); err != nil {
		return nil, invalidArgs(err)
	}
	if p.Action == "" {
		return nil, invalidArgs(fmt.Errorf("action requires \"action\""))
	}

	parsed, err := shortcut.Parse(p.Action)
	if err != nil {
		return nil, invalidArgs(err)
	}
	cmd, err := parsed.ToCommand(p.App, p.Launch)
	if err != nil {
		return nil, invalidArgs(err)
	}
	return cmd, nil
}
