// SPDX-License-Identifier: MPL-2.0

package shortcut

import (
	"testing"

	"cwm/internal/action"
	"cwm/internal/display"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "focus", want: Action{Kind: KindFocus}},
		{in: "maximize", want: Action{Kind: KindMaximize}},
		{in: "move_display:next", want: Action{Kind: KindMoveDisplay, Target: display.Target{Kind: display.TargetNext}}},
		{in: "resize:80%", want: Action{Kind: KindResize, Size: action.ResizeTarget{Unit: action.ResizeUnitPercent, Percent: 80}}},
		{in: "focus:extra", wantErr: true},
		{in: "move_display:", wantErr: true},
		{in: "resize:", wantErr: true},
		{in: "frobnicate", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAction_ToCommand(t *testing.T) {
	t.Parallel()

	focus, err := Parse("focus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := focus.ToCommand("", nil); err == nil {
		t.Error("expected error when focus shortcut has no bound app")
	}
	cmd, err := focus.ToCommand("Safari", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc, ok := cmd.(action.FocusCommand)
	if !ok || len(fc.Apps) != 1 || fc.Apps[0] != "Safari" {
		t.Errorf("expected FocusCommand{Apps:[Safari]}, got %#v", cmd)
	}

	maximize, err := Parse("maximize")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, err = maximize.ToCommand("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(action.MaximizeCommand); !ok {
		t.Errorf("expected MaximizeCommand, got %#v", cmd)
	}
}
