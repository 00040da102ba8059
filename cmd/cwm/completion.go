// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the `cwm completion` command.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cwm.

To enable shell completions, run one of the following commands:

` + subtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(cwm completion bash)"

  # Or install system-wide:
  cwm completion bash > /etc/bash_completion.d/cwm

` + subtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(cwm completion zsh)"

  # Or install to fpath:
  cwm completion zsh > "${fpath[1]}/_cwm"

` + subtitleStyle.Render("Fish:") + `
  cwm completion fish > ~/.config/fish/completions/cwm.fish

` + subtitleStyle.Render("PowerShell:") + `
  cwm completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  cwm completion powershell >> $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
