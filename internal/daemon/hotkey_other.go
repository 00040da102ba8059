// SPDX-License-Identifier: MPL-2.0

//go:build !darwin

package daemon

import "errors"

// errUnsupportedPlatform is returned by the non-darwin hotkeyRegistrar;
// cwm does not ship outside macOS (pkg/platform), this exists only so
// the rest of the package builds for cross-compilation checks.
var errUnsupportedPlatform = errors.New("hotkey: global hotkeys are only supported on macOS")

type noopRegistrar struct{}

func newHotkeyRegistrar() hotkeyRegistrar { return noopRegistrar{} }

func (noopRegistrar) Register(string, keyCombo) error { return errUnsupportedPlatform }

func (noopRegistrar) Start() (<-chan hotkeyEvent, error) { return nil, errUnsupportedPlatform }

func (noopRegistrar) Close() error { return nil }
