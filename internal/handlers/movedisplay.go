// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"
	"errors"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/display"
	"cwm/internal/model"
)

// MoveDisplay implements the `move_display` command (spec §4.4
// "MoveDisplay specifics"): resolve the target display, scale the
// window's position/size proportionally onto it, apply, then raise it.
func (s *Set) MoveDisplay(ctx context.Context, cmd action.MoveDisplayCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	if len(cmd.Apps) == 0 {
		return nil, action.NewError(action.CodeInvalidArgs, "move_display requires at least one app")
	}

	cfg := effectiveConfig(ec)
	res, actErr := resolveApp(ctx, s.Backend, cmd.Apps, cfg.FuzzyThreshold, cmd.Launch, cfg)
	if actErr != nil {
		return nil, actErr
	}
	if res.ShouldLaunch {
		return s.launchedResult(ctx, "move_display", res.FirstQuery)
	}
	app := res.Match.App
	info := res.Match.Info

	policy := policyFromConfig(cfg.Retry)
	win, actErr := mainWindowWithRetry(ctx, s.Backend, app, policy)
	if actErr != nil {
		return nil, actErr
	}

	displays, err := s.Backend.ListDisplays(ctx)
	if err != nil {
		return nil, translateBackendErr(err)
	}
	from, ok := display.Current(win.Bounds(), displays)
	if !ok {
		return nil, action.NewError(action.CodeDisplayNotFound, "no display found for window")
	}

	to, err := display.Resolve(cmd.Target, displays, from.Index, aliasesFromConfig(cfg.DisplayAliases))
	if err != nil {
		if errors.Is(err, display.ErrNotFound) {
			return nil, action.NewErrorBuilder(action.CodeDisplayNotFound, err.Error()).Build()
		}
		return nil, action.NewErrorBuilder(action.CodeGeneral, "display resolution failed").Wrap(err).Build()
	}

	target := model.ScaleInto(win.Bounds(), from.VisibleRect(), to.VisibleRect())
	if actErr := applyAndVerify(ctx, s.Backend, win, target, policy); actErr != nil {
		return nil, actErr
	}
	if err := s.Backend.FocusWindow(ctx, app); err != nil {
		return nil, translateBackendErr(err)
	}

	return &action.Result{
		Action: "move_display",
		Data: action.MoveDisplayData{
			App:       app,
			Display:   action.NewDisplayView(to),
			MatchInfo: &info,
		},
	}, nil
}

// aliasesFromConfig adapts the on-disk display-alias shape to the
// resolver's Alias type.
func aliasesFromConfig(cfg map[string]config.DisplayAliasConfig) map[string]display.Alias {
	out := make(map[string]display.Alias, len(cfg))
	for name, a := range cfg {
		out[name] = display.Alias{Name: name, UniqueIDs: a.UniqueIDs, Description: a.Description}
	}
	return out
}
