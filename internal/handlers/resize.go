// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"

	"cwm/internal/action"
	"cwm/internal/display"
	"cwm/internal/model"
)

// Resize implements the `resize` command (spec §4.4 "Resize specifics"):
// compute the target size from To, clamp to the visible rect unless
// Overflow, then center the window on its current display.
func (s *Set) Resize(ctx context.Context, cmd action.ResizeCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	if len(cmd.Apps) == 0 {
		return nil, action.NewError(action.CodeInvalidArgs, "resize requires at least one app")
	}

	cfg := effectiveConfig(ec)
	res, actErr := resolveApp(ctx, s.Backend, cmd.Apps, cfg.FuzzyThreshold, cmd.Launch, cfg)
	if actErr != nil {
		return nil, actErr
	}
	if res.ShouldLaunch {
		return s.launchedResult(ctx, "resize", res.FirstQuery)
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
	current, ok := display.Current(win.Bounds(), displays)
	if !ok {
		return nil, action.NewError(action.CodeDisplayNotFound, "no display found for window")
	}
	visible := current.VisibleRect()

	width, height := resolveSize(cmd.To, visible)
	if !cmd.Overflow {
		width = min(width, visible.Width)
		height = min(height, visible.Height)
	}

	target := model.Rect{
		X:      visible.X + (visible.Width-width)/2,
		Y:      visible.Y + (visible.Height-height)/2,
		Width:  width,
		Height: height,
	}

	if actErr := applyAndVerify(ctx, s.Backend, win, target, policy); actErr != nil {
		return nil, actErr
	}

	return &action.Result{
		Action: "resize",
		Data: action.ResizeData{
			App:       app,
			Size:      action.Size{Width: target.Width, Height: target.Height},
			MatchInfo: &info,
		},
	}, nil
}

// resolveSize converts a parsed ResizeTarget into concrete pixel
// dimensions against visible, inferring height from the display's
// aspect ratio when a pixel/point target omits it (spec §4.4, §8
// boundary behaviour).
func resolveSize(to action.ResizeTarget, visible model.Rect) (width, height int) {
	switch to.Unit {
	case action.ResizeUnitPercent:
		width = roundDiv(visible.Width*to.Percent, 100)
		height = roundDiv(visible.Height*to.Percent, 100)
	default: // pixel, point
		width = to.Width
		height = to.Height
		if height == 0 && visible.Width > 0 {
			height = roundDiv(width*visible.Height, visible.Width)
		}
	}
	return width, height
}

func roundDiv(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	if numerator < 0 {
		return -roundDiv(-numerator, denominator)
	}
	return (numerator + denominator/2) / denominator
}
