// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newResizeCommand creates the `cwm resize` command.
func newResizeCommand() *cobra.Command {
	var to string
	var overflow bool

	cmd := &cobra.Command{
		Use:   "resize [app...] --to <size>",
		Short: "Resize an application's main window",
		Long: `Resize computes a target size from --to and applies it, centering the
window on its current display.

--to accepts a percent (` + "`80%`, `0.8`, `full`" + `), a pixel size
(` + "`800x600`, `800px`" + `, height inferred from the display's aspect
ratio when omitted), or a point size (` + "`800x600pt`, `800pt`" + `).`,
		Args: cobra.ArbitraryArgs,
	}
	cmd.Flags().StringVar(&to, "to", "", "target size: percent, pixel, or point")
	cmd.Flags().BoolVar(&overflow, "overflow", false, "allow the computed size to exceed the visible rect")
	launch, noLaunch := addLaunchFlags(cmd)

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		if to == "" {
			return fmt.Errorf("--to is required")
		}
		target, err := action.ParseResizeTarget(to)
		if err != nil {
			return err
		}
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}
		return run(cc, action.ResizeCommand{
			Apps:     apps,
			To:       target,
			Overflow: overflow,
			Launch:   resolveLaunch(cc, *launch, *noLaunch),
		})
	}
	return cmd
}
