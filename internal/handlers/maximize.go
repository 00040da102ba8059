// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"

	"cwm/internal/action"
	"cwm/internal/display"
	"cwm/internal/model"
)

// Maximize implements the `maximize` command (spec §4.4 "Maximize
// specifics"): with no app list, target the focused window; otherwise
// the first matched app. Set the window's origin and size to its
// current display's visible rect.
func (s *Set) Maximize(ctx context.Context, cmd action.MaximizeCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	cfg := effectiveConfig(ec)

	var (
		app  model.AppInfo
		win  model.Window
		info *model.MatchInfo
	)

	if len(cmd.Apps) == 0 {
		focusedApp, focusedWin, err := s.Backend.FocusedWindow(ctx)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		app, win = focusedApp, focusedWin
	} else {
		res, actErr := resolveApp(ctx, s.Backend, cmd.Apps, cfg.FuzzyThreshold, cmd.Launch, cfg)
		if actErr != nil {
			return nil, actErr
		}
		if res.ShouldLaunch {
			return s.launchedResult(ctx, "maximize", res.FirstQuery)
		}
		app = res.Match.App
		info = &res.Match.Info

		w, actErr := mainWindowWithRetry(ctx, s.Backend, app, policyFromConfig(cfg.Retry))
		if actErr != nil {
			return nil, actErr
		}
		win = w
	}

	displays, err := s.Backend.ListDisplays(ctx)
	if err != nil {
		return nil, translateBackendErr(err)
	}
	current, ok := display.Current(win.Bounds(), displays)
	if !ok {
		return nil, action.NewError(action.CodeDisplayNotFound, "no display found for window")
	}

	target := current.VisibleRect()
	if actErr := applyAndVerify(ctx, s.Backend, win, target, policyFromConfig(cfg.Retry)); actErr != nil {
		return nil, actErr
	}

	return &action.Result{
		Action: "maximize",
		Data: action.MaximizeData{
			App:       app,
			MatchInfo: info,
		},
	}, nil
}
