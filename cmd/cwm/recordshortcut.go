// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/shortcut"
)

// newRecordShortcutCommand creates the `cwm record-shortcut` command.
// It is CLI-only: action.RecordShortcutCommand.IsInteractive() is true,
// so the dispatcher rejects it outright when IsCLI is false (hotkey or
// IPC callers never see it).
func newRecordShortcutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-shortcut <name>",
		Short: "Interactively define a global hotkey binding",
		Long: `Record-shortcut walks through naming a shortcut, its key combination, the
app it targets, and the action it runs, then writes it into the
configuration's shortcuts list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.RecordShortcutCommand{Name: args[0]})
		},
	}
	return cmd
}

// recordShortcutHandler prompts on the controlling terminal for a key
// combination, a target app and (unless cmd.Action is set) an action
// string, checks that the action parses, and persists the new shortcut;
// the key combination is saved as typed, without validation. True OS-level key-chord capture (hooking the keyboard tap to
// record keys as they're physically pressed) is out of scope here; the
// combination is typed using the same "mod+mod+key" grammar the config
// file uses.
func recordShortcutHandler(ctx context.Context, cmd action.RecordShortcutCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Recording shortcut %q\n", cmd.Name)

	keys, err := promptLine(reader, "Key combination (e.g. cmd+shift+f): ")
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "reading key combination").Wrap(err).Build()
	}

	app, err := promptLine(reader, "Target app (blank for none): ")
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "reading target app").Wrap(err).Build()
	}

	actionStr := cmd.Action
	if actionStr == "" {
		actionStr, err = promptLine(reader, "Action (focus, maximize, move_display:<target>, resize:<size>): ")
		if err != nil {
			return nil, action.NewErrorBuilder(action.CodeGeneral, "reading action").Wrap(err).Build()
		}
	}
	if _, err := shortcut.Parse(actionStr); err != nil {
		return nil, action.NewErrorBuilder(action.CodeInvalidArgs, "invalid shortcut action").Wrap(err).Build()
	}

	cfg := ec.Config
	if cfg == nil {
		loaded, _, loadErr := config.Load()
		if loadErr != nil {
			return nil, action.NewErrorBuilder(action.CodeConfig, "loading config").Wrap(loadErr).Build()
		}
		cfg = loaded
	}

	replaced := false
	for i, sc := range cfg.Shortcuts {
		if sc.Name == cmd.Name {
			cfg.Shortcuts[i] = config.ShortcutConfig{Name: cmd.Name, Keys: keys, App: app, Action: actionStr}
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Shortcuts = append(cfg.Shortcuts, config.ShortcutConfig{Name: cmd.Name, Keys: keys, App: app, Action: actionStr})
	}

	if _, err := config.Save(cfg); err != nil {
		return nil, action.NewErrorBuilder(action.CodeConfig, "saving config").Wrap(err).Build()
	}

	return &action.Result{
		Action: "record_shortcut",
		Data:   action.SimpleData{Result: fmt.Sprintf("saved shortcut %q (%s)", cmd.Name, keys)},
	}, nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
