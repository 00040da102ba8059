// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newGetCommand creates the `cwm get` command.
func newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [app...]",
		Short: "Report the focused app/window/display, or resolve an app without acting on it",
		Long: `With no arguments, get reports the currently focused application,
window, and display. With app arguments, it runs the same multi-app
resolution a window command would, without acting on the result.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			apps, err := resolveApps(args)
			if err != nil {
				return err
			}
			target := action.GetTarget{Kind: action.GetTargetFocused}
			if len(apps) > 0 {
				target = action.GetTarget{Kind: action.GetTargetWindow, Apps: apps}
			}
			return run(cc, action.GetCommand{Target: target})
		},
	}
	return cmd
}
