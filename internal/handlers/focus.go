// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"

	"cwm/internal/action"
)

// Focus implements the `focus` command (spec §4.4 "Focus specifics"):
// bring the first matching app's main window forward and activate it.
func (s *Set) Focus(ctx context.Context, cmd action.FocusCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	if len(cmd.Apps) == 0 {
		return nil, action.NewError(action.CodeInvalidArgs, "focus requires at least one app")
	}

	cfg := effectiveConfig(ec)
	res, actErr := resolveApp(ctx, s.Backend, cmd.Apps, cfg.FuzzyThreshold, cmd.Launch, cfg)
	if actErr != nil {
		return nil, actErr
	}
	if res.ShouldLaunch {
		return s.launchedResult(ctx, "focus", res.FirstQuery)
	}

	app := res.Match.App
	if err := s.Backend.FocusWindow(ctx, app); err != nil {
		return nil, translateBackendErr(err)
	}

	info := res.Match.Info
	return &action.Result{
		Action: "focus",
		Data: action.FocusData{
			App:       app,
			MatchInfo: &info,
		},
	}, nil
}

// launchedResult issues the launch and wraps it as the Launched payload
// under the given action name (spec DESIGN NOTES "Launch side-effect
// discipline" — handlers never wait for the new window themselves).
func (s *Set) launchedResult(ctx context.Context, actionName, query string) (*action.Result, *action.Error) {
	if err := s.Backend.LaunchApp(ctx, query); err != nil {
		return nil, translateBackendErr(err)
	}
	return &action.Result{
		Action: actionName,
		Data: action.LaunchedData{
			App:     query,
			Message: "launched " + query + "; its window may not be visible yet",
		},
	}, nil
}
