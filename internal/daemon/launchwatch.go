// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"context"
	"time"

	"cwm/internal/backend"
	"cwm/internal/model"
)

// launchPollInterval is how often the watcher re-lists running apps to
// detect newly launched ones. osascript's System Events round-trip is
// cheap enough (tens of milliseconds) that this stays unnoticeable.
const launchPollInterval = 500 * time.Millisecond

// launchWatcher observes app-launch events by polling b.ListApps and
// diffing the PID set against what it last saw. Unlike hotkey
// registration, macOS has no subprocess-reachable API for this, but
// unlike hotkeys it also doesn't need one: the accessibility backend
// already shells out to osascript for every other query, so reusing it
// here keeps the daemon cgo-free outside hotkey.go.
type launchWatcher struct {
	backend backend.Backend
	seen    map[int]struct{}
}

// newLaunchWatcher returns a watcher with no apps yet seen; its first
// poll establishes the baseline without reporting any of it as "newly
// launched" (spec §4.9.2 only cares about launches observed after the
// daemon starts).
func newLaunchWatcher(b backend.Backend) *launchWatcher {
	return &launchWatcher{backend: b, seen: make(map[int]struct{})}
}

// watch polls until ctx is cancelled, sending each newly observed app
// exactly once on the returned channel. The channel is closed when ctx
// is done; a ListApps call that fails is skipped and the next tick polls
// again (best-effort detection is acceptable since hotkeys remain
// available either way).
func (w *launchWatcher) watch(ctx context.Context) <-chan model.AppInfo {
	out := make(chan model.AppInfo)

	go func() {
		defer close(out)

		if apps, err := w.backend.ListApps(ctx, false); err == nil {
			w.recordBaseline(apps)
		}

		ticker := time.NewTicker(launchPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				apps, err := w.backend.ListApps(ctx, false)
				if err != nil {
					continue
				}
				for _, app := range w.diff(apps) {
					select {
					case out <- app:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

func (w *launchWatcher) recordBaseline(apps []model.AppInfo) {
	for _, app := range apps {
		w.seen[app.PID] = struct{}{}
	}
}

// diff returns the apps in apps not present in w.seen, and replaces
// w.seen with the PIDs in apps as a side effect.
func (w *launchWatcher) diff(apps []model.AppInfo) []model.AppInfo {
	var fresh []model.AppInfo
	live := make(map[int]struct{}, len(apps))
	for _, app := range apps {
		live[app.PID] = struct{}{}
		if _, ok := w.seen[app.PID]; !ok {
			fresh = append(fresh, app)
		}
	}
	w.seen = live
	return fresh
}
