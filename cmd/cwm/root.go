// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/handlers"
	"cwm/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))
)

var (
	// verboseFlag enables debug-level logging and the verbose error
	// chain in text-mode output.
	verboseFlag bool
	// cfgFileFlag overrides the config path, same precedence as
	// CWM_CONFIG (spec §6 "Environment").
	cfgFileFlag string

	// Output mode flags, resolved by renderResult (spec §4.10 step 4).
	quietFlag  bool
	jsonFlag   bool
	namesFlag  bool
	formatFlag string

	// loadedConfig and dispatcher are populated once in
	// cobra.OnInitialize, before any subcommand's RunE runs.
	loadedConfig *config.Config
	dispatcher   *action.Dispatcher
)

var rootCmd = &cobra.Command{
	Use:   "cwm",
	Short: "A macOS window manager CLI and background daemon",
	Long: titleStyle.Render("cwm") + subtitleStyle.Render(" - focus, arrange, and move windows by app name") + `

cwm resolves a running application by fuzzy name match and acts on its
main window: focus it, maximize it, resize it to a fraction of the
screen, or move it to another display. A background daemon registers
global hotkeys and app-launch rules that dispatch the same actions.

` + subtitleStyle.Render("Quick start:") + `
  cwm focus Safari               Focus Safari's main window
  cwm resize Safari --to 80%     Resize it to 80% of the display
  cwm daemon start                Start the hotkey/app-rule daemon
  cwm config show                  Show the current configuration`,
}

// getVersionString mirrors the teacher's root command version line.
func getVersionString() string {
	if version.Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
}

// Execute runs the root command via fang, for enhanced help rendering
// and interrupt-aware shutdown (os.Interrupt). SIGTERM, which `cwm
// daemon stop` sends, is handled by `daemon foreground` itself via
// signal.NotifyContext.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFileFlag, "config", "", "config file (default is $CWM_CONFIG or ~/.cwm/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "no output on success; errors to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print the result as JSON")
	rootCmd.PersistentFlags().BoolVar(&namesFlag, "names", false, "print one name per line (list command only)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", `format result with {field} placeholders, e.g. --format "{data.app.name}"`)

	rootCmd.AddCommand(newFocusCommand())
	rootCmd.AddCommand(newMaximizeCommand())
	rootCmd.AddCommand(newResizeCommand())
	rootCmd.AddCommand(newMoveDisplayCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newPingCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newCheckPermissionsCommand())
	rootCmd.AddCommand(newRecordShortcutCommand())
	rootCmd.AddCommand(newDaemonCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newSpotlightCommand())
	rootCmd.AddCommand(newInstallCommand())
	rootCmd.AddCommand(newUninstallCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// initRootConfig loads the configuration once, before any subcommand
// runs, and builds the dispatcher every subcommand shares. Config load
// failure is not fatal here: handlers see config.DefaultConfig() and
// `cwm config show`/`verify` surface the real error to the user.
func initRootConfig() {
	if cfgFileFlag != "" {
		os.Setenv(config.EnvConfigPath, cfgFileFlag)
	}

	cfg, _, err := config.Load()
	if err != nil {
		if verboseFlag {
			fmt.Fprintln(os.Stderr, warningStyle.Render("Warning: ")+fmt.Sprintf("failed to load config: %v", err))
		}
		cfg = config.DefaultConfig()
	}
	if !verboseFlag {
		verboseFlag = cfg.UI.Verbose
	}
	loadedConfig = cfg

	set := handlers.New(backend.New())
	h := set.Build()
	h.RecordShortcut = recordShortcutHandler
	h.Daemon = daemonHandler
	h.Config = configHandler
	h.Spotlight = spotlightHandler
	h.Install = installHandler
	h.Uninstall = uninstallHandler
	h.Update = updateHandler
	dispatcher = action.NewDispatcher(h)
}

// newLogger builds the logger propagated through ExecutionContext,
// matching the ambient-stack logging convention: one *log.Logger per
// front-end. Quiet mode discards it entirely; --verbose drops it to
// debug level.
func newLogger() *log.Logger {
	out := io.Writer(os.Stderr)
	if quietFlag {
		out = io.Discard
	}
	logger := log.NewWithOptions(out, log.Options{Prefix: "cwm"})
	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newExecutionContext builds the ExecutionContext every subcommand's
// dispatch call shares: the loaded config, verbosity, IsCLI true (the
// CLI is the one front-end allowed to run interactive commands), and a
// fresh logger honoring --quiet/--verbose.
func newExecutionContext() action.ExecutionContext {
	return action.NewExecutionContext(loadedConfig, verboseFlag, true, newLogger())
}
