// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"
	"sort"

	"cwm/internal/action"
	"cwm/internal/display"
	"cwm/internal/match"
	"cwm/internal/model"
)

// List implements the `list` command (spec §4.5 "List"): enumerate
// apps, displays, or aliases as an ordered items sequence.
func (s *Set) List(ctx context.Context, cmd action.ListCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	cfg := effectiveConfig(ec)

	switch cmd.Resource {
	case action.ListResourceApps:
		apps, err := s.Backend.ListApps(ctx, cmd.Detailed)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		items := make([]any, len(apps))
		for i, a := range apps {
			items[i] = action.ListAppItem{Name: a.Name, PID: a.PID, BundleID: a.BundleID, Titles: a.Titles}
		}
		return &action.Result{Action: "list", Data: action.ListData{Items: items}}, nil

	case action.ListResourceDisplays:
		displays, err := s.Backend.ListDisplays(ctx)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		items := make([]any, len(displays))
		for i, d := range displays {
			if cmd.Detailed {
				items[i] = action.NewDetailedDisplayView(d)
			} else {
				items[i] = action.NewDisplayView(d)
			}
		}
		return &action.Result{Action: "list", Data: action.ListData{Items: items}}, nil

	case action.ListResourceAliases:
		displays, err := s.Backend.ListDisplays(ctx)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		aliases := aliasesFromConfig(cfg.DisplayAliases)
		order := make([]string, 0, len(cfg.DisplayAliases))
		for name := range cfg.DisplayAliases {
			order = append(order, name)
		}
		sort.Strings(order)

		statuses := display.List(displays, aliases, order)
		items := make([]any, len(statuses))
		for i, st := range statuses {
			item := action.ListAliasItem{Name: st.Name, Type: string(st.Type), Resolved: st.Resolved}
			if st.Resolved {
				idx := st.DisplayIndex
				item.DisplayIndex = &idx
			}
			if cmd.Detailed {
				item.DisplayName = st.DisplayName
				item.DisplayUniqueID = st.DisplayUniqueID
				item.Description = st.Description
				item.MappedIDs = st.MappedIDs
			}
			items[i] = item
		}
		return &action.Result{Action: "list", Data: action.ListData{Items: items}}, nil

	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown list resource")
	}
}

// Get implements the `get` command (spec §4.5 "Get"): report the
// focused app/window/display, or resolve an app list without acting
// on it.
func (s *Set) Get(ctx context.Context, cmd action.GetCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	cfg := effectiveConfig(ec)

	switch cmd.Target.Kind {
	case action.GetTargetFocused:
		focusedApp, focusedWin, err := s.Backend.FocusedWindow(ctx)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		return s.getResult(ctx, focusedApp, focusedWin)

	case action.GetTargetWindow:
		apps, err := s.Backend.ListApps(ctx, true)
		if err != nil {
			return nil, translateBackendErr(err)
		}
		for _, q := range cmd.Target.Apps {
			mm, ok := match.Find(q, apps, cfg.FuzzyThreshold)
			if !ok {
				continue
			}
			win, actErr := mainWindowWithRetry(ctx, s.Backend, mm.App, policyFromConfig(cfg.Retry))
			if actErr != nil {
				return nil, actErr
			}
			return s.getResult(ctx, mm.App, win)
		}

		first := ""
		if len(cmd.Target.Apps) > 0 {
			first = cmd.Target.Apps[0]
		}
		suggestions := match.Suggest(first, apps)
		return nil, action.NewErrorBuilder(action.CodeAppNotFound, "no running application matches the given name").
			WithSuggestions(suggestions...).Build()

	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown get target")
	}
}

// getResult assembles the {app, window, display} payload shared by both
// Get target forms.
func (s *Set) getResult(ctx context.Context, app model.AppInfo, win model.Window) (*action.Result, *action.Error) {
	displays, err := s.Backend.ListDisplays(ctx)
	if err != nil {
		return nil, translateBackendErr(err)
	}
	current, ok := display.Current(win.Bounds(), displays)
	if !ok {
		return nil, action.NewError(action.CodeDisplayNotFound, "no display found for window")
	}
	return &action.Result{
		Action: "get",
		Data: action.GetData{
			App:     app,
			Window:  win,
			Display: action.NewDisplayView(current),
		},
	}, nil
}
