// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/daemon"
	"cwm/internal/selfupdate"
)

// newUninstallCommand creates the `cwm uninstall` command and its
// run/check/channel subcommands.
func newUninstallCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "uninstall",
		Short: "Stop the daemon and remove installed state",
	}

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Stop a running daemon and remove the recorded install state",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.UninstallCommand{ExternalSub: action.ExternalSub{Sub: "run"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report whether an install state is recorded",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.UninstallCommand{ExternalSub: action.ExternalSub{Sub: "check"}})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "channel",
		Short: "Print the release channel recorded before removal",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.UninstallCommand{ExternalSub: action.ExternalSub{Sub: "channel"}})
		},
	})

	return root
}

// uninstallHandler implements the uninstall external-collaborator command.
// It never deletes the config directory itself (shortcuts, app rules,
// display aliases are left for a future reinstall); it only stops the
// daemon and clears the install-state bookkeeping install/update wrote.
func uninstallHandler(ctx context.Context, cmd action.UninstallCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	switch cmd.Sub {
	case "run":
		return uninstallRun()
	case "check":
		return uninstallCheck()
	case "channel":
		return channelCommand("uninstall", "")
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown uninstall subcommand "+cmd.Sub)
	}
}

func uninstallRun() (*action.Result, *action.Error) {
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving pid path").Wrap(err).Build()
	}
	if _, running, _ := daemon.Status(pidPath); running {
		if err := daemon.Stop(pidPath); err != nil {
			return nil, action.NewErrorBuilder(action.CodeGeneral, "stopping daemon").Wrap(err).Build()
		}
	}

	versionPath, err := config.VersionPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving install-state path").Wrap(err).Build()
	}
	if err := os.Remove(versionPath); err != nil && !os.IsNotExist(err) {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "removing install state").Wrap(err).Build()
	}

	return &action.Result{Action: "uninstall", Data: action.SimpleData{Result: "uninstalled"}}, nil
}

func uninstallCheck() (*action.Result, *action.Error) {
	versionPath, err := config.VersionPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving install-state path").Wrap(err).Build()
	}
	st, err := selfupdate.LoadState(versionPath)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "reading install state").Wrap(err).Build()
	}
	installed := st.Version != ""
	return &action.Result{
		Action: "uninstall",
		Data: action.SimpleData{Result: map[string]any{
			"installed": installed,
			"version":   st.Version,
			"message":   fmt.Sprintf("installed=%v", installed),
		}},
	}, nil
}
