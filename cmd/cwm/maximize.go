// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newMaximizeCommand creates the `cwm maximize` command.
func newMaximizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maximize [app...]",
		Short: "Maximize an application's main window to its display's visible rect",
		Long: `Maximize resolves the first matching application and sets its main
window's origin and size to fill its current display's visible rect
(desktop area minus the menu bar and Dock).

An empty app list targets the currently focused window. Pass "-" to
read the app name from stdin.`,
		Args: cobra.ArbitraryArgs,
	}
	launch, noLaunch := addLaunchFlags(cmd)
	cmd.RunE = func(cc *cobra.Command, args []string) error {
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}
		return run(cc, action.MaximizeCommand{
			Apps:   apps,
			Launch: resolveLaunch(cc, *launch, *noLaunch),
		})
	}
	return cmd
}
