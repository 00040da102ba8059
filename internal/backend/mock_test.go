// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"context"
	"errors"
	"testing"

	"cwm/internal/model"
)

func TestMock_MainWindow_NoWindowSentinel(t *testing.T) {
	t.Parallel()

	m := NewMock()
	_, err := m.MainWindow(context.Background(), model.AppInfo{Name: "Safari"})
	if !errors.Is(err, ErrNoWindow) {
		t.Fatalf("expected ErrNoWindow, got %v", err)
	}
}

func TestMock_MoveResize_UpdatesWindow(t *testing.T) {
	t.Parallel()

	m := NewMock()
	w := model.Window{AppName: "Safari", AppPID: 100, Width: 800, Height: 600}
	m.Windows["Safari"] = w

	rect := model.Rect{X: 10, Y: 20, Width: 1000, Height: 700}
	if err := m.MoveResize(context.Background(), w, rect); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.MainWindow(context.Background(), model.AppInfo{Name: "Safari"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Bounds() != rect {
		t.Errorf("expected bounds %+v, got %+v", rect, got.Bounds())
	}
	if len(m.MovedWindows) != 1 {
		t.Errorf("expected 1 recorded move, got %d", len(m.MovedWindows))
	}
}

func TestMock_FocusedWindow_NoneSentinel(t *testing.T) {
	t.Parallel()

	m := NewMock()
	_, _, err := m.FocusedWindow(context.Background())
	if !errors.Is(err, ErrNoFocusedWindow) {
		t.Fatalf("expected ErrNoFocusedWindow, got %v", err)
	}
}

func TestMock_FocusWindow_RecordsCalls(t *testing.T) {
	t.Parallel()

	m := NewMock()
	_ = m.FocusWindow(context.Background(), model.AppInfo{Name: "Chrome"})
	_ = m.FocusWindow(context.Background(), model.AppInfo{Name: "Safari"})

	want := []string{"Chrome", "Safari"}
	if len(m.FocusedApps) != 2 || m.FocusedApps[0] != want[0] || m.FocusedApps[1] != want[1] {
		t.Errorf("expected %v, got %v", want, m.FocusedApps)
	}
}

func TestMock_LaunchApp_RecordsCalls(t *testing.T) {
	t.Parallel()

	m := NewMock()
	if err := m.LaunchApp(context.Background(), "Slack"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.LaunchedApps) != 1 || m.LaunchedApps[0] != "Slack" {
		t.Errorf("expected [Slack], got %v", m.LaunchedApps)
	}
}

func TestMock_CheckPermissions(t *testing.T) {
	t.Parallel()

	m := NewMock()
	m.PermissionsGranted = true
	ok, err := m.CheckPermissions(context.Background(), false)
	if err != nil || !ok {
		t.Fatalf("expected granted=true, got %v err=%v", ok, err)
	}
}
