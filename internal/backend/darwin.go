// SPDX-License-Identifier: MPL-2.0

//go:build darwin

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"cwm/internal/model"
)

// fieldSep and recordSep delimit AppleScript list output so a single
// osascript invocation can return many records without a second
// round-trip per field — the same one-shot-per-call discipline the
// teacher's BaseCLIEngine applies to container-engine invocations.
const (
	fieldSep  = "" // unit separator
	recordSep = "" // record separator
)

// darwinBackend drives the accessibility backend via osascript/System
// Events. It never touches cgo: every call is a subprocess, matching the
// teacher's exec.CommandContext-based engine shape
// (internal/container.BaseCLIEngine) with the same injectable command
// constructor so tests can substitute a fake without a real osascript.
type darwinBackend struct {
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New returns the darwin accessibility backend.
func New() Backend {
	return &darwinBackend{execCommand: exec.CommandContext}
}

func (b *darwinBackend) run(ctx context.Context, script string) (string, error) {
	cmd := b.execCommand(ctx, "osascript", "-e", script)
	out, err := cmd.Output()
	if err != nil {
		if translated := translateOSAScriptError(err); translated != nil {
			return "", translated
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// translateOSAScriptError recognizes the AppleScript automation-denied
// error (-1743) in a CombinedOutput/Stderr payload and maps it to
// ErrPermissionDenied; any other exec failure is left for the caller to
// wrap generically.
func translateOSAScriptError(err error) error {
	var exitErr *exec.ExitError
	if !asExitError(err, &exitErr) {
		return nil
	}
	if strings.Contains(string(exitErr.Stderr), "-1743") {
		return ErrPermissionDenied
	}
	return nil
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	*target = ee
	return true
}

func (b *darwinBackend) ListApps(ctx context.Context, detailed bool) ([]model.AppInfo, error) {
	script := `set out to ""
tell application "System Events"
	set procs to every process whose background only is false
	repeat with p in procs
		set appName to name of p
		set appPID to unix id of p
		set titleList to ""
		try
			repeat with w in windows of p
				set titleList to titleList & (name of w) & "` + fieldSep + `"
			end repeat
		end try
		set out to out & appName & "` + fieldSep + `" & appPID & "` + fieldSep + `" & titleList & "` + recordSep + `"
	end repeat
end tell
return out`

	raw, err := b.run(ctx, script)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var apps []model.AppInfo
	for _, rec := range strings.Split(raw, recordSep) {
		if rec == "" {
			continue
		}
		fields := strings.Split(rec, fieldSep)
		if len(fields) < 2 {
			continue
		}
		pid, _ := strconv.Atoi(fields[1])
		app := model.AppInfo{Name: fields[0], PID: pid}
		if detailed {
			for _, t := range fields[2:] {
				if t != "" {
					app.Titles = append(app.Titles, t)
				}
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (b *darwinBackend) MainWindow(ctx context.Context, app model.AppInfo) (model.Window, error) {
	script := fmt.Sprintf(`tell application "System Events"
	tell process "%s"
		if (count of windows) is 0 then
			return "none"
		end if
		set w to window 1
		set {px, py} to position of w
		set {sw, sh} to size of w
		set wTitle to ""
		try
			set wTitle to name of w
		end try
		return (px as string) & "%s" & (py as string) & "%s" & (sw as string) & "%s" & (sh as string) & "%s" & wTitle
	end tell
end tell`, escapeAppleScriptString(app.Name), fieldSep, fieldSep, fieldSep, fieldSep)

	raw, err := b.run(ctx, script)
	if err != nil {
		return model.Window{}, err
	}
	if raw == "none" {
		return model.Window{}, ErrNoWindow
	}
	return parseWindowFields(app, raw)
}

func parseWindowFields(app model.AppInfo, raw string) (model.Window, error) {
	fields := strings.Split(raw, fieldSep)
	if len(fields) < 4 {
		return model.Window{}, fmt.Errorf("backend: malformed window fields %q", raw)
	}
	x, _ := strconv.Atoi(fields[0])
	y, _ := strconv.Atoi(fields[1])
	w, _ := strconv.Atoi(fields[2])
	h, _ := strconv.Atoi(fields[3])
	title := ""
	if len(fields) > 4 {
		title = fields[4]
	}
	return model.Window{
		AppName: app.Name,
		AppPID:  app.PID,
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		Title:   title,
	}, nil
}

func (b *darwinBackend) FocusWindow(ctx context.Context, app model.AppInfo) error {
	script := fmt.Sprintf(`tell application "System Events"
	set frontmost of process "%s" to true
end tell
tell application "%s" to activate`, escapeAppleScriptString(app.Name), escapeAppleScriptString(app.Name))
	_, err := b.run(ctx, script)
	return err
}

func (b *darwinBackend) MoveResize(ctx context.Context, w model.Window, rect model.Rect) error {
	script := fmt.Sprintf(`tell application "System Events"
	tell process "%s"
		set size of window 1 to {%d, %d}
		set position of window 1 to {%d, %d}
	end tell
end tell`, escapeAppleScriptString(w.AppName), rect.Width, rect.Height, rect.X, rect.Y)
	_, err := b.run(ctx, script)
	return err
}

func (b *darwinBackend) LaunchApp(ctx context.Context, name string) error {
	cmd := b.execCommand(ctx, "open", "-a", name)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open -a %q: %w", name, err)
	}
	return nil
}

func (b *darwinBackend) ListDisplays(ctx context.Context) ([]model.Display, error) {
	cmd := b.execCommand(ctx, "system_profiler", "SPDisplaysDataType", "-json")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("system_profiler: %w", err)
	}
	return parseSPDisplays(out)
}

// spDisplaysOutput mirrors the subset of `system_profiler
// SPDisplaysDataType -json` this backend reads.
type spDisplaysOutput struct {
	Displays []struct {
		Items []struct {
			Name          string `json:"_name"`
			Resolution    string `json:"_spdisplays_resolution"`
			Main          string `json:"spdisplays_main"`
			IsBuiltin     string `json:"spdisplays_connection_type"`
			DisplayID     string `json:"_spdisplays_displayID"`
			VendorID      string `json:"_spdisplays_vendor-id"`
			ProductID     string `json:"_spdisplays_device-id"`
			SerialNumber  string `json:"_spdisplays_serial-number"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

func parseSPDisplays(raw []byte) ([]model.Display, error) {
	var parsed spDisplaysOutput
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing system_profiler output: %w", err)
	}

	var displays []model.Display
	idx := 0
	for _, card := range parsed.Displays {
		for _, item := range card.Items {
			w, h := parseResolution(item.Resolution)
			displays = append(displays, model.Display{
				Index:        idx,
				Name:         item.Name,
				Width:        w,
				Height:       h,
				IsMain:       item.Main == "spdisplays_yes",
				IsBuiltin:    strings.Contains(item.IsBuiltin, "internal"),
				DisplayID:    parseHexOrDec(item.DisplayID),
				VendorID:     parseHexOrDec(item.VendorID),
				ModelID:      parseHexOrDec(item.ProductID),
				SerialNumber: parseHexOrDec(item.SerialNumber),
				UnitNumber:   uint32(idx),
			})
			idx++
		}
	}
	return displays, nil
}

func parseResolution(s string) (int, int) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == 'x' || r == ' ' })
	if len(parts) < 2 {
		return 0, 0
	}
	w, _ := strconv.Atoi(parts[0])
	h, _ := strconv.Atoi(parts[1])
	return w, h
}

func parseHexOrDec(s string) uint32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return uint32(v)
		}
		return 0
	}
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(v)
	}
	if v, err := strconv.ParseUint(s, 16, 32); err == nil {
		return uint32(v)
	}
	return 0
}

func (b *darwinBackend) FocusedWindow(ctx context.Context) (model.AppInfo, model.Window, error) {
	script := `tell application "System Events"
	set p to first process whose frontmost is true
	set appName to name of p
	set appPID to unix id of p
	if (count of windows of p) is 0 then
		return appName & "` + fieldSep + `" & appPID & "` + fieldSep + `none"
	end if
	set w to window 1 of p
	set {px, py} to position of w
	set {sw, sh} to size of w
	return appName & "` + fieldSep + `" & appPID & "` + fieldSep + `" & (px as string) & "` + fieldSep + `" & (py as string) & "` + fieldSep + `" & (sw as string) & "` + fieldSep + `" & (sh as string)
end tell`

	raw, err := b.run(ctx, script)
	if err != nil {
		return model.AppInfo{}, model.Window{}, err
	}
	fields := strings.Split(raw, fieldSep)
	if len(fields) < 3 {
		return model.AppInfo{}, model.Window{}, fmt.Errorf("backend: malformed focused-window fields %q", raw)
	}
	pid, _ := strconv.Atoi(fields[1])
	app := model.AppInfo{Name: fields[0], PID: pid}
	if fields[2] == "none" {
		return app, model.Window{}, ErrNoFocusedWindow
	}
	win, err := parseWindowFields(app, strings.Join(fields[2:], fieldSep))
	return app, win, err
}

func (b *darwinBackend) CheckPermissions(ctx context.Context, prompt bool) (bool, error) {
	script := `tell application "System Events" to get name of first process`
	_, err := b.run(ctx, script)
	if err == nil {
		return true, nil
	}
	if err == ErrPermissionDenied {
		return false, nil
	}
	return false, err
}

// escapeAppleScriptString guards against an app name containing a
// double quote from breaking out of the script's string literal.
func escapeAppleScriptString(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
