// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/spotlight"
)

// newSpotlightCommand creates the `cwm spotlight` command and its
// generate/list/remove subcommands.
func newSpotlightCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "spotlight",
		Short: "Generate or manage .app wrappers Spotlight can launch",
	}

	var args string
	generate := &cobra.Command{
		Use:   "generate <name> -- <cwm-args...>",
		Short: "Create a .app wrapper that runs cwm with fixed arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, a []string) error {
			name := a[0]
			wrapped := a[1:]
			if args != "" {
				wrapped = strings.Fields(args)
			}
			return run(cc, action.SpotlightCommand{ExternalSub: action.ExternalSub{
				Sub:    "generate",
				Params: map[string]string{"name": name, "args": strings.Join(wrapped, " ")},
			}})
		},
	}
	generate.Flags().StringVar(&args, "args", "", `cwm arguments to wrap, e.g. --args "focus Safari"`)
	root.AddCommand(generate)

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List generated .app wrappers",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, a []string) error {
			return run(cc, action.SpotlightCommand{ExternalSub: action.ExternalSub{Sub: "list"}})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a generated .app wrapper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, a []string) error {
			return run(cc, action.SpotlightCommand{ExternalSub: action.ExternalSub{
				Sub:    "remove",
				Params: map[string]string{"name": a[0]},
			}})
		},
	})

	return root
}

// spotlightDir is the per-user Applications folder Spotlight indexes
// without elevation, matching how the generated wrappers are meant to
// be discovered.
func spotlightDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Applications"), nil
}

// spotlightHandler implements the spotlight external-collaborator command.
func spotlightHandler(ctx context.Context, cmd action.SpotlightCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	dir, err := spotlightDir()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving Applications folder").Wrap(err).Build()
	}

	switch cmd.Sub {
	case "generate":
		return spotlightGenerate(dir, cmd.Params["name"], cmd.Params["args"])
	case "list":
		return spotlightList(dir)
	case "remove":
		return spotlightRemove(dir, cmd.Params["name"])
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown spotlight subcommand "+cmd.Sub)
	}
}

func spotlightGenerate(dir, name, argsJoined string) (*action.Result, *action.Error) {
	if name == "" {
		return nil, action.NewError(action.CodeInvalidArgs, "spotlight generate requires a name")
	}
	self, err := os.Executable()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving executable path").Wrap(err).Build()
	}
	var wrapped []string
	if argsJoined != "" {
		wrapped = strings.Fields(argsJoined)
	}

	path, err := spotlight.Generate(dir, spotlight.Bundle{Name: name, Args: wrapped}, self)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "generating spotlight bundle").Wrap(err).Build()
	}
	return &action.Result{Action: "spotlight", Data: action.SimpleData{Result: path}}, nil
}

func spotlightList(dir string) (*action.Result, *action.Error) {
	names, err := spotlight.List(dir)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "listing spotlight bundles").Wrap(err).Build()
	}
	return &action.Result{Action: "spotlight", Data: action.SimpleData{Result: names}}, nil
}

func spotlightRemove(dir, name string) (*action.Result, *action.Error) {
	if name == "" {
		return nil, action.NewError(action.CodeInvalidArgs, "spotlight remove requires a name")
	}
	if err := spotlight.Remove(dir, name); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "removing spotlight bundle").Wrap(err).Build()
	}
	return &action.Result{Action: "spotlight", Data: action.SimpleData{Result: fmt.Sprintf("removed %q", name)}}, nil
}
