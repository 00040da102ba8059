// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"fmt"
	"strings"
)

// modifier is a bitmask of held modifier keys. Its bits are cwm's own,
// not Carbon's cmdKey/shiftKey/optionKey/controlKey positions; the
// darwin registrar converts them before calling RegisterEventHotKey.
type modifier uint32

const (
	modCmd modifier = 1 << iota
	modShift
	modOption
	modControl
)

// keyCombo is a parsed `keys` field (spec §4.9.1): a modifier mask plus
// the Carbon virtual keycode of the non-modifier key.
type keyCombo struct {
	Mods    modifier
	Keycode uint16
}

// parseKeys parses a "+"-joined combination such as "cmd+shift+f" into a
// keyCombo. Modifier names are case-insensitive; exactly one non-modifier
// token is required.
func parseKeys(s string) (keyCombo, error) {
	parts := strings.Split(s, "+")
	var combo keyCombo
	var keyToken string

	for _, raw := range parts {
		tok := strings.ToLower(strings.TrimSpace(raw))
		switch tok {
		case "cmd", "command":
			combo.Mods |= modCmd
		case "shift":
			combo.Mods |= modShift
		case "opt", "option", "alt":
			combo.Mods |= modOption
		case "ctrl", "control":
			combo.Mods |= modControl
		case "":
			return keyCombo{}, fmt.Errorf("invalid key combination %q: empty token", s)
		default:
			if keyToken != "" {
				return keyCombo{}, fmt.Errorf("invalid key combination %q: more than one non-modifier key", s)
			}
			keyToken = tok
		}
	}
	if keyToken == "" {
		return keyCombo{}, fmt.Errorf("invalid key combination %q: no key given", s)
	}

	code, ok := keycodes[keyToken]
	if !ok {
		return keyCombo{}, fmt.Errorf("invalid key combination %q: unrecognized key %q", s, keyToken)
	}
	combo.Keycode = code
	return combo, nil
}

// keycodes maps the key names this daemon accepts to their macOS
// virtual keycodes (Carbon's kVK_ANSI_* / kVK_* constants).
var keycodes = map[string]uint16{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05,
	"z": 0x06, "x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C,
	"w": 0x0D, "e": 0x0E, "r": 0x0F, "y": 0x10, "t": 0x11, "1": 0x12,
	"2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17, "9": 0x19,
	"7": 0x1A, "8": 0x1C, "0": 0x1D, "o": 0x1F, "u": 0x20, "i": 0x22,
	"p": 0x23, "l": 0x25, "j": 0x26, "k": 0x28, "n": 0x2D, "m": 0x2E,
	"left": 0x7B, "right": 0x7C, "down": 0x7D, "up": 0x7E,
	"space": 0x31, "tab": 0x30, "return": 0x24, "escape": 0x35,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

// hotkeyEvent is what a HotkeyRegistrar reports when a registered
// combination fires.
type hotkeyEvent struct {
	// ID is the name the binding was registered under (ShortcutConfig.Name).
	ID string
}

// hotkeyRegistrar registers global key combinations with the OS and
// reports presses on a channel. Register returns an error if the
// combination is already bound, failing the whole daemon start per
// spec §4.9.1.
type hotkeyRegistrar interface {
	// Register binds id to combo. Must be called before Start.
	Register(id string, combo keyCombo) error
	// Start begins listening for registered combinations, sending each
	// press on the returned channel until Close is called.
	Start() (<-chan hotkeyEvent, error)
	// Close unregisters every binding and releases OS resources.
	Close() error
}
