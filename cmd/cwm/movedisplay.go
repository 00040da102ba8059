// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/display"
)

// newMoveDisplayCommand creates the `cwm move-display` command.
func newMoveDisplayCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:     "move-display [app...] --target <target>",
		Aliases: []string{"move_display"},
		Short:   "Move an application's main window to another display",
		Long: `MoveDisplay resolves --target (` + "`next`, `prev`" + `, a 1-based index, or
a display alias) and moves the window there, scaling its position and
size proportionally between the two displays' visible rects.`,
		Args: cobra.ArbitraryArgs,
	}
	cmd.Flags().StringVar(&target, "target", "", "next, prev, a 1-based index, or a display alias")
	launch, noLaunch := addLaunchFlags(cmd)

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		if target == "" {
			return fmt.Errorf("--target is required")
		}
		parsed, err := display.ParseTarget(target)
		if err != nil {
			return err
		}
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}
		return run(cc, action.MoveDisplayCommand{
			Apps:   apps,
			Target: parsed,
			Launch: resolveLaunch(cc, *launch, *noLaunch),
		})
	}
	return cmd
}
