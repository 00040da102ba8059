// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/config"
)

// newConfigCommand creates the `cwm config` command and its
// show/path/verify/default/set/reset subcommands.
func newConfigCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the on-disk configuration",
	}

	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{Sub: "show"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{Sub: "path"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Check the active configuration for structural problems",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{Sub: "verify"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Write the default configuration, refusing to overwrite an existing file",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{Sub: "default"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Overwrite the configuration with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{Sub: "reset"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a single config field by dotted key path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.ConfigCommand{ExternalSub: action.ExternalSub{
				Sub:    "set",
				Params: map[string]string{"key": args[0], "value": args[1]},
			}})
		},
	})

	return root
}

// configHandler implements the config external-collaborator command.
func configHandler(ctx context.Context, cmd action.ConfigCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	switch cmd.Sub {
	case "show":
		return configShow(ec)
	case "path":
		return configPath()
	case "verify":
		return configVerify(ec)
	case "default":
		return configCreateDefault()
	case "reset":
		return configReset()
	case "set":
		return configSet(ec, cmd.Params["key"], cmd.Params["value"])
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown config subcommand "+cmd.Sub)
	}
}

func configShow(ec action.ExecutionContext) (*action.Result, *action.Error) {
	cfg := ec.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "marshaling config").Wrap(err).Build()
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "marshaling config").Wrap(err).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: asMap}}, nil
}

func configPath() (*action.Result, *action.Error) {
	path, err := config.FilePath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving config path").Wrap(err).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: path}}, nil
}

func configVerify(ec action.ExecutionContext) (*action.Result, *action.Error) {
	cfg := ec.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	problems := config.Verify(cfg)
	if len(problems) > 0 {
		return nil, action.NewErrorBuilder(action.CodeConfig, fmt.Sprintf("%d problem(s) found", len(problems))).
			WithSuggestions(problems...).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: "ok"}}, nil
}

func configCreateDefault() (*action.Result, *action.Error) {
	path, err := config.CreateDefault()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeConfig, "writing default config").Wrap(err).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: path}}, nil
}

func configReset() (*action.Result, *action.Error) {
	path, err := config.Save(config.DefaultConfig())
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeConfig, "resetting config").Wrap(err).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: path}}, nil
}

// configSet edits a single field by its mapstructure-tagged dotted path
// (e.g. "retry.count", "fuzzy_threshold") and persists the result. The
// edit round-trips cfg through a generic map so arbitrarily nested keys
// work without a hand-written switch per field.
func configSet(ec action.ExecutionContext, key, value string) (*action.Result, *action.Error) {
	if key == "" {
		return nil, action.NewError(action.CodeInvalidArgs, "config set requires a key")
	}
	cfg := ec.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "marshaling config").Wrap(err).Build()
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "marshaling config").Wrap(err).Build()
	}

	if err := setDottedKey(asMap, key, value); err != nil {
		return nil, action.NewErrorBuilder(action.CodeInvalidArgs, "invalid config key").Wrap(err).Build()
	}

	mapRaw, err := json.Marshal(asMap)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "marshaling config").Wrap(err).Build()
	}
	var updated config.Config
	if err := json.Unmarshal(mapRaw, &updated); err != nil {
		return nil, action.NewErrorBuilder(action.CodeConfig, "applying config value").Wrap(err).Build()
	}

	if problems := config.Verify(&updated); len(problems) > 0 {
		return nil, action.NewErrorBuilder(action.CodeConfig, "value would make the config invalid").
			WithSuggestions(problems...).Build()
	}

	path, err := config.Save(&updated)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeConfig, "saving config").Wrap(err).Build()
	}
	return &action.Result{Action: "config", Data: action.SimpleData{Result: path}}, nil
}

// setDottedKey walks m along path's "."-separated segments, creating
// intermediate maps as needed, and sets the final segment to value
// (parsed as JSON when possible, else kept as a raw string so plain
// words like "true" or "3" land as the right scalar type).
func setDottedKey(m map[string]any, path, value string) error {
	segments := splitDotted(path)
	if len(segments) == 0 {
		return fmt.Errorf("empty key")
	}
	cur := m
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segments[len(segments)-1]] = parseScalar(value)
	return nil
}

func splitDotted(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	out = append(out, path[start:])
	return out
}

func parseScalar(value string) any {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err == nil {
		return parsed
	}
	return value
}
