// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/selfupdate"
)

// newUpdateCommand creates the `cwm update` command and its
// run/check/channel subcommands.
func newUpdateCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "update",
		Short: "Apply a downloaded release archive, or roll back",
	}

	var updateVersion string
	var rollback bool
	runCmd := &cobra.Command{
		Use:   "run [<archive> <checksums>]",
		Short: "Verify and apply a downloaded release archive",
		Long: `Run applies a local release archive the same way install run does, but
also records the version being replaced as a rollback marker. Pass
--rollback instead of an archive to swap the recorded current and
previous versions back (the binary itself must still be re-applied
with run <archive> <checksums> --version <previous>).`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			if rollback {
				return run(cc, action.UpdateCommand{ExternalSub: action.ExternalSub{Sub: "rollback"}})
			}
			if len(args) != 2 {
				return fmt.Errorf("update run requires <archive> <checksums>, or --rollback")
			}
			return run(cc, action.UpdateCommand{ExternalSub: action.ExternalSub{
				Sub: "run",
				Params: map[string]string{
					"archive":   args[0],
					"checksums": args[1],
					"version":   updateVersion,
				},
			}})
		},
	}
	runCmd.Flags().StringVar(&updateVersion, "version", "", "version string to record for the applied archive")
	runCmd.Flags().BoolVar(&rollback, "rollback", false, "revert the recorded current/previous version bookkeeping")
	root.AddCommand(runCmd)

	root.AddCommand(&cobra.Command{
		Use:   "check <target-version>",
		Short: "Compare the running version against a target version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.UpdateCommand{ExternalSub: action.ExternalSub{
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
			return run(cc, action.UpdateCommand{ExternalSub: action.ExternalSub{Sub: "channel", Params: params}})
		},
	})

	return root
}

// updateHandler implements the update external-collaborator command.
func updateHandler(ctx context.Context, cmd action.UpdateCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	switch cmd.Sub {
	case "run":
		return installRun("update", cmd.Params["archive"], cmd.Params["checksums"], cmd.Params["version"])
	case "rollback":
		return updateRollback()
	case "check":
		return checkVersion("update", cmd.Params["target"])
	case "channel":
		return channelCommand("update", cmd.Params["channel"])
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown update subcommand "+cmd.Sub)
	}
}

func updateRollback() (*action.Result, *action.Error) {
	versionPath, err := config.VersionPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving install-state path").Wrap(err).Build()
	}
	restored, err := selfupdate.Rollback(versionPath)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "rolling back install state").Wrap(err).Build()
	}
	return &action.Result{
		Action: "update",
		Data:   action.SimpleData{Result: fmt.Sprintf("rollback marker now points at %s; re-apply its archive with update run", restored)},
	}, nil
}
