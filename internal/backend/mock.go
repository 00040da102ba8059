// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"context"
	"sync"

	"cwm/internal/model"
)

// Mock is an in-memory Backend for handler/daemon tests. It never shells
// out; callers seed Apps/Displays/Focused directly and can inspect
// Moved/Focused/Launched afterward to assert handler behavior.
type Mock struct {
	mu sync.Mutex

	Apps       []model.AppInfo
	Windows    map[string]model.Window // keyed by app name
	Displays   []model.Display
	Focused    *model.AppInfo
	FocusedWin model.Window

	PermissionsGranted bool
	PermissionsErr     error

	FocusedApps  []string // names FocusWindow was called with, in order
	LaunchedApps []string
	MovedWindows []MovedCall

	ListAppsErr      error
	MainWindowErr    error
	FocusWindowErr   error
	MoveResizeErr    error
	LaunchAppErr     error
	ListDisplaysErr  error
	FocusedWindowErr error
}

// MovedCall records one MoveResize invocation for assertions.
type MovedCall struct {
	Window model.Window
	Rect   model.Rect
}

// NewMock returns an empty Mock backend; callers populate its fields.
func NewMock() *Mock {
	return &Mock{Windows: make(map[string]model.Window)}
}

func (m *Mock) ListApps(ctx context.Context, detailed bool) ([]model.AppInfo, error) {
	if m.ListAppsErr != nil {
		return nil, m.ListAppsErr
	}
	apps := make([]model.AppInfo, len(m.Apps))
	copy(apps, m.Apps)
	if !detailed {
		for i := range apps {
			apps[i].Titles = nil
		}
	}
	return apps, nil
}

func (m *Mock) MainWindow(ctx context.Context, app model.AppInfo) (model.Window, error) {
	if m.MainWindowErr != nil {
		return model.Window{}, m.MainWindowErr
	}
	w, ok := m.Windows[app.Name]
	if !ok {
		return model.Window{}, ErrNoWindow
	}
	return w, nil
}

func (m *Mock) FocusWindow(ctx context.Context, app model.AppInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FocusedApps = append(m.FocusedApps, app.Name)
	return m.FocusWindowErr
}

func (m *Mock) MoveResize(ctx context.Context, w model.Window, rect model.Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MovedWindows = append(m.MovedWindows, MovedCall{Window: w, Rect: rect})
	if m.MoveResizeErr != nil {
		return m.MoveResizeErr
	}
	moved := w
	moved.X, moved.Y, moved.Width, moved.Height = rect.X, rect.Y, rect.Width, rect.Height
	m.Windows[w.AppName] = moved
	return nil
}

func (m *Mock) LaunchApp(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LaunchedApps = append(m.LaunchedApps, name)
	return m.LaunchAppErr
}

func (m *Mock) ListDisplays(ctx context.Context) ([]model.Display, error) {
	if m.ListDisplaysErr != nil {
		return nil, m.ListDisplaysErr
	}
	displays := make([]model.Display, len(m.Displays))
	copy(displays, m.Displays)
	return displays, nil
}

func (m *Mock) FocusedWindow(ctx context.Context) (model.AppInfo, model.Window, error) {
	if m.FocusedWindowErr != nil {
		return model.AppInfo{}, model.Window{}, m.FocusedWindowErr
	}
	if m.Focused == nil {
		return model.AppInfo{}, model.Window{}, ErrNoFocusedWindow
	}
	return *m.Focused, m.FocusedWin, nil
}

func (m *Mock) CheckPermissions(ctx context.Context, prompt bool) (bool, error) {
	if m.PermissionsErr != nil {
		return false, m.PermissionsErr
	}
	return m.PermissionsGranted, nil
}
