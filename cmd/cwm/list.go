// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cwm/internal/action"
)

// newListCommand creates the `cwm list` command.
func newListCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "list {apps|displays|aliases}",
		Short: "List running applications, connected displays, or display aliases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var resource action.ListResource
			switch args[0] {
			case "apps":
				resource = action.ListResourceApps
			case "displays":
				resource = action.ListResourceDisplays
			case "aliases":
				resource = action.ListResourceAliases
			default:
				return fmt.Errorf("unknown list resource %q, want apps, displays, or aliases", args[0])
			}
			return run(cc, action.ListCommand{Resource: resource, Detailed: detailed})
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include extra fields per item")
	return cmd
}
