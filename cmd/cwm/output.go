// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// renderResult formats a successful dispatch result per the output mode
// resolved from flags (spec §4.10 step 4): quiet, json, names (list
// only), format, or the TTY-friendly default.
func renderResult(cc *cobra.Command, result *action.Result) error {
	switch {
	case quietFlag:
		return nil
	case jsonFlag:
		return renderJSON(result)
	case namesFlag:
		return renderNames(result)
	case formatFlag != "":
		return renderFormat(result, formatFlag)
	default:
		return renderDefault(result)
	}
}

func renderJSON(result *action.Result) error {
	out, err := json.MarshalIndent(map[string]any{
		"jsonrpc": "2.0",
		"result":  result,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// toMap round-trips result through JSON to get a plain map cwm can walk
// generically for --names/--format, regardless of which concrete
// *Data type produced it.
func toMap(result *action.Result) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// renderNames prints one name per line. Only meaningful for `list`;
// anything else with a single "name"-ish field prints that field alone.
func renderNames(result *action.Result) error {
	m, err := toMap(result)
	if err != nil {
		return err
	}
	data, _ := m["data"].(map[string]any)
	if items, ok := data["items"].([]any); ok {
		for _, item := range items {
			entry, _ := item.(map[string]any)
			if name, ok := entry["name"].(string); ok {
				fmt.Println(name)
			}
		}
		return nil
	}
	if app, ok := data["app"].(map[string]any); ok {
		if name, ok := app["name"].(string); ok {
			fmt.Println(name)
		}
	}
	return nil
}

// renderFormat substitutes "{field}" (and "{field.nested}") placeholders
// in tpl from result's JSON value; arrays join with ", " (spec §4.10
// step 4).
func renderFormat(result *action.Result, tpl string) error {
	m, err := toMap(result)
	if err != nil {
		return err
	}
	var out strings.Builder
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '{' {
			out.WriteByte(tpl[i])
			continue
		}
		end := strings.IndexByte(tpl[i:], '}')
		if end < 0 {
			out.WriteByte(tpl[i])
			continue
		}
		field := tpl[i+1 : i+end]
		out.WriteString(formatField(m, field))
		i += end
	}
	fmt.Println(out.String())
	return nil
}

// formatField walks a dotted path (e.g. "data.app.name") through m and
// renders the leaf: scalars as-is, arrays joined with ", ".
func formatField(m map[string]any, path string) string {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		asMap, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = asMap[part]
		if !ok {
			return ""
		}
	}
	return renderLeaf(cur)
}

func renderLeaf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = renderLeaf(e)
		}
		return strings.Join(parts, ", ")
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}

// renderDefault prints a short TTY-friendly summary, shaped by which
// command produced result. Anything unrecognized falls back to a
// key: value dump of its data so no command is ever silently unhandled.
func renderDefault(result *action.Result) error {
	m, err := toMap(result)
	if err != nil {
		return err
	}
	data, _ := m["data"].(map[string]any)

	switch result.Action {
	case "focus", "maximize", "resize", "move_display":
		if msg, ok := data["message"].(string); ok {
			fmt.Println(warningStyle.Render(msg))
			return nil
		}
		app, _ := data["app"].(map[string]any)
		name, _ := app["name"].(string)
		fmt.Println(successStyle.Render("✓") + " " + cmdStyle.Render(result.Action) + " " + name)
		return nil
	case "list":
		items, _ := data["items"].([]any)
		for _, item := range items {
			entry, _ := item.(map[string]any)
			fmt.Println(renderListItem(entry))
		}
		return nil
	case "ping":
		fmt.Println(successStyle.Render("pong"))
		return nil
	default:
		return renderGeneric(result.Action, data)
	}
}

// renderListItem summarizes one `list` item: apps show name (+pid),
// displays show name (+dimensions), aliases show name (+resolution
// status). Falls back to the bare name field for anything unexpected.
func renderListItem(entry map[string]any) string {
	name, _ := entry["name"].(string)
	switch {
	case entry["pid"] != nil:
		if pid, ok := entry["pid"].(float64); ok {
			return fmt.Sprintf("%s (pid %d)", name, int(pid))
		}
	case entry["width"] != nil && entry["height"] != nil:
		w, _ := entry["width"].(float64)
		h, _ := entry["height"].(float64)
		marker := ""
		if isMain, _ := entry["is_main"].(bool); isMain {
			marker = " (main)"
		}
		return fmt.Sprintf("%s %dx%d%s", name, int(w), int(h), marker)
	case entry["resolved"] != nil:
		status := "unresolved"
		if resolved, _ := entry["resolved"].(bool); resolved {
			status = "resolved"
		}
		return fmt.Sprintf("%s (%s)", name, status)
	}
	return name
}

// renderGeneric prints a flat key: value listing for result shapes with
// no dedicated formatting above (get, status, version,
// check_permissions, and the external-collaborator commands).
func renderGeneric(action string, data map[string]any) error {
	fmt.Println(titleStyle.Render(action))
	for k, v := range data {
		fmt.Printf("  %s: %s\n", k, renderLeaf(v))
	}
	return nil
}
