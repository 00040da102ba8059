// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/selfupdate"
	"cwm/internal/version"
)

// newInstallCommand creates the `cwm install` command and its
// run/check/channel subcommands.
func newInstallCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "install",
		Short: "Place a local release archive and register it as installed",
	}

	var installVersion string
	runCmd := &cobra.Command{
		Use:   "run <archive> <checksums>",
		Short: "Verify and install a downloaded release archive",
		Long: `Run verifies <archive> against the matching entry in <checksums> (a
standard sha256sum-style file) and replaces the running binary with the
one inside the archive. Neither file is fetched over the network; both
must already be on disk.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.InstallCommand{ExternalSub: action.ExternalSub{
				Sub: "run",
				Params: map[string]string{
					"archive":   args[0],
					"checksums": args[1],
					"version":   installVersion,
				},
			}})
		},
	}
	runCmd.Flags().StringVar(&installVersion, "version", "", "version string to record for the installed archive")
	root.AddCommand(runCmd)

	root.AddCommand(&cobra.Command{
		Use:   "check <target-version>",
		Short: "Compare the running version against a target version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.InstallCommand{ExternalSub: action.ExternalSub{
				Sub:    "check",
				Params: map[string]string{"target": args[0]},
			}})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "channel [name]",
		Short: "Print, or set, the recorded release channel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			params := map[string]string{}
			if len(args) == 1 {
				params["channel"] = args[0]
			}
			return run(cc, action.InstallCommand{ExternalSub: action.ExternalSub{Sub: "channel", Params: params}})
		},
	})

	return root
}

// installHandler implements the install external-collaborator command.
func installHandler(ctx context.Context, cmd action.InstallCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	switch cmd.Sub {
	case "run":
		return installRun("install", cmd.Params["archive"], cmd.Params["checksums"], cmd.Params["version"])
	case "check":
		return checkVersion("install", cmd.Params["target"])
	case "channel":
		return channelCommand("install", cmd.Params["channel"])
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown install subcommand "+cmd.Sub)
	}
}

func installRun(actionName, archive, checksums, newVersion string) (*action.Result, *action.Error) {
	if archive == "" || checksums == "" {
		return nil, action.NewError(action.CodeInvalidArgs, actionName+" run requires <archive> and <checksums>")
	}
	if err := selfupdate.ApplyLocal(archive, checksums); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "installing release archive").Wrap(err).Build()
	}
	if newVersion == "" {
		newVersion = version.Version
	}
	versionPath, err := config.VersionPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving install-state path").Wrap(err).Build()
	}
	if err := selfupdate.RecordInstall(versionPath, newVersion, ""); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "recording install state").Wrap(err).Build()
	}
	return &action.Result{
		Action: actionName,
		Data:   action.SimpleData{Result: fmt.Sprintf("installed %s", newVersion)},
	}, nil
}

// checkVersion compares the running version against target, shared by
// install/update check.
func checkVersion(actionName, target string) (*action.Result, *action.Error) {
	if target == "" {
		return nil, action.NewError(action.CodeInvalidArgs, "check requires a target version")
	}
	result, err := selfupdate.CheckLocal(version.Version, target)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeInvalidArgs, "comparing versions").Wrap(err).Build()
	}
	return &action.Result{
		Action: actionName,
		Data: action.SimpleData{Result: map[string]any{
			"current_version":   result.CurrentVersion,
			"target_version":    result.LatestVersion,
			"upgrade_available": result.UpgradeAvailable,
			"message":           result.Message,
		}},
	}, nil
}

// channelCommand implements "channel [name]" for both install and
// update: with no name it reports the recorded channel, with a name it
// overwrites it. actionName lets install/update each report their own
// Result.Action while sharing this implementation.
func channelCommand(actionName, newChannel string) (*action.Result, *action.Error) {
	versionPath, err := config.VersionPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving install-state path").Wrap(err).Build()
	}
	st, err := selfupdate.LoadState(versionPath)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "reading install state").Wrap(err).Build()
	}
	if newChannel == "" {
		return &action.Result{Action: actionName, Data: action.SimpleData{Result: st.Channel}}, nil
	}
	st.Channel = newChannel
	if err := selfupdate.SaveState(versionPath, st); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "saving install state").Wrap(err).Build()
	}
	return &action.Result{Action: actionName, Data: action.SimpleData{Result: newChannel}}, nil
}
