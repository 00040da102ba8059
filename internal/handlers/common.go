// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/match"
	"cwm/internal/model"
	"cwm/internal/retry"
)

// effectiveConfig returns ec.Config, falling back to config.DefaultConfig
// so handlers behave sensibly in tests that build an ExecutionContext
// with a nil Config.
func effectiveConfig(ec action.ExecutionContext) *config.Config {
	if ec.Config != nil {
		return ec.Config
	}
	return config.DefaultConfig()
}

// effectiveLaunch resolves a command's Launch field against the
// config's global default (spec §4.4 step 3).
func effectiveLaunch(cmdLaunch *bool, cfg *config.Config) bool {
	if cmdLaunch != nil {
		return *cmdLaunch
	}
	return cfg.Launch
}

// resolution is the outcome of the shared window-command preamble
// (spec §4.4 steps 1-3): either a concrete match, or a signal that the
// handler should launch the first query and return Launched.
type resolution struct {
	Match        model.Match
	Apps         []model.AppInfo
	ShouldLaunch bool
	FirstQuery   string
}

// policyFromConfig adapts the config-level retry policy shape to
// retry.Policy.
func policyFromConfig(r config.RetryConfig) retry.Policy {
	return retry.Policy{Count: r.Count, DelayMS: r.DelayMS, Backoff: r.Backoff}
}

// resolveApp runs the multi-app fallback (spec §4.1 "Multi-app
// fallback", §4.4 steps 1-3): refresh the live app list, try the matcher
// against each query in order, commit on the first hit. detailed must be
// true whenever title-matching needs to see Titles, which command
// handlers always require since title steps are part of the matcher's
// priority walk.
func resolveApp(ctx context.Context, b backend.Backend, queries []string, threshold int, cmdLaunch *bool, cfg *config.Config) (resolution, *action.Error) {
	apps, err := b.ListApps(ctx, true)
	if err != nil {
		return resolution{}, translateBackendErr(err)
	}

	for _, q := range queries {
		if m, ok := match.Find(q, apps, threshold); ok {
			return resolution{Match: m, Apps: apps}, nil
		}
	}

	first := ""
	if len(queries) > 0 {
		first = queries[0]
	}
	if effectiveLaunch(cmdLaunch, cfg) {
		return resolution{Apps: apps, ShouldLaunch: true, FirstQuery: first}, nil
	}

	suggestions := match.Suggest(first, apps)
	return resolution{}, action.NewErrorBuilder(action.CodeAppNotFound, "no running application matches the given name").
		WithSuggestions(suggestions...).
		Build()
}

// mainWindowWithRetry locates app's main window, retrying with p's
// backoff policy when the app is running but has not yet created one
// (spec §4.7): this covers an app that was started independently of cwm
// and is still launching its first window.
func mainWindowWithRetry(ctx context.Context, b backend.Backend, app model.AppInfo, p retry.Policy) (model.Window, *action.Error) {
	var win model.Window
	err := retry.Do(ctx, 0, p, nil, func(attempt int) (bool, error) {
		w, err := b.MainWindow(ctx, app)
		if err == nil {
			win = w
			return false, nil
		}
		if err == backend.ErrNoWindow {
			return true, err
		}
		return false, err
	})
	if err != nil {
		return model.Window{}, action.NewError(action.CodeWindowNotFound, "no window for "+app.Name)
	}
	return win, nil
}

// applyAndVerify sets w's frame to rect and retries when the resulting
// window bounds don't match (spec §4.4 "Retry on size mismatch").
func applyAndVerify(ctx context.Context, b backend.Backend, w model.Window, rect model.Rect, p retry.Policy) *action.Error {
	app := model.AppInfo{Name: w.AppName, PID: w.AppPID}
	err := retry.Do(ctx, 0, p, nil, func(attempt int) (bool, error) {
		if err := b.MoveResize(ctx, w, rect); err != nil {
			return false, err
		}
		got, err := b.MainWindow(ctx, app)
		if err != nil {
			return false, err
		}
		if got.Bounds() != rect {
			return true, errMismatch
		}
		return false, nil
	})
	if err != nil {
		return action.NewError(action.CodeGeneral, "window did not converge to requested frame")
	}
	return nil
}

var errMismatch = &mismatchError{}

type mismatchError struct{}

func (*mismatchError) Error() string { return "window frame mismatch" }

// translateBackendErr maps a backend.Backend failure to the action-layer
// taxonomy at the handler boundary (spec §7), the one place accessibility
// errors become ActionErrors.
func translateBackendErr(err error) *action.Error {
	switch err {
	case backend.ErrPermissionDenied:
		return action.NewError(action.CodePermissionDenied, "accessibility permission denied")
	case backend.ErrNoWindow:
		return action.NewError(action.CodeWindowNotFound, "window not found")
	case backend.ErrNoFocusedWindow:
		return action.NewError(action.CodeWindowNotFound, "no focused window")
	case backend.ErrAppNotFound:
		return action.NewError(action.CodeAppNotFound, "application not found")
	default:
		return action.NewErrorBuilder(action.CodeGeneral, "accessibility backend error").Wrap(err).Build()
	}
}
