// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newPingCommand creates the `cwm ping` command.
func newPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that cwm's action layer responds",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.PingCommand{})
		},
	}
}

// newStatusCommand creates the `cwm status` command.
func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the daemon is running",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.StatusCommand{})
		},
	}
}

// newVersionCommand creates the `cwm version` command.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build-time version metadata",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.VersionCommand{})
		},
	}
}

// newCheckPermissionsCommand creates the `cwm check-permissions` command.
func newCheckPermissionsCommand() *cobra.Command {
	var prompt bool
	cmd := &cobra.Command{
		Use:   "check-permissions",
		Short: "Report whether cwm holds the Accessibility permission it needs",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.CheckPermissionsCommand{Prompt: prompt})
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "re-trigger the macOS permission dialog if not yet granted")
	return cmd
}
