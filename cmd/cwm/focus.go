// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newFocusCommand creates the `cwm focus` command.
func newFocusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus [app...]",
		Short: "Bring an application's main window forward",
		Long: `Focus resolves the first matching application (exact, prefix, regex, or
fuzzy name match) and brings its main window forward.

Pass "-" instead of an app name to read it from stdin.`,
		Args: cobra.ArbitraryArgs,
	}
	launch, noLaunch := addLaunchFlags(cmd)
	cmd.RunE = func(cc *cobra.Command, args []string) error {
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}
		return run(cc, action.FocusCommand{
			Apps:   apps,
			Launch: resolveLaunch(cc, *launch, *noLaunch),
		})
	}
	return cmd
}
