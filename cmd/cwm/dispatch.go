// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/issue"
)

// resolveApps implements spec §4.10 step 2: a single literal "-"
// argument is replaced by one line read from stdin; an empty line is an
// error. Any other argument list passes through unchanged (including
// empty, which individual handlers interpret as "currently focused").
func resolveApps(args []string) ([]string, error) {
	if len(args) != 1 || args[0] != "-" {
		return args, nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading app name from stdin: %w", err)
		}
		return nil, errors.New("reading app name from stdin: empty input")
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return nil, errors.New("reading app name from stdin: empty input")
	}
	return []string{line}, nil
}

// resolveLaunch implements spec §4.10 step 1: --launch/--no-launch
// resolve to Option<bool>, nil meaning "use the config default". Each
// flag is registered against its own bool; if a caller passes both,
// --launch takes precedence and --no-launch is ignored.
func resolveLaunch(cmd *cobra.Command, launch, noLaunch bool) *bool {
	switch {
	case cmd.Flags().Changed("launch"):
		v := launch
		return &v
	case cmd.Flags().Changed("no-launch"):
		v := !noLaunch
		return &v
	default:
		return nil
	}
}

// addLaunchFlags registers the shared --launch/--no-launch pair on a
// window command.
func addLaunchFlags(cmd *cobra.Command) (*bool, *bool) {
	var launch, noLaunch bool
	cmd.Flags().BoolVar(&launch, "launch", false, "launch the app if no running match is found")
	cmd.Flags().BoolVar(&noLaunch, "no-launch", false, "fail with app-not-found instead of launching")
	return &launch, &noLaunch
}

// run is the shared tail of every subcommand's RunE: dispatch cmd,
// format the result per the resolved output mode, and exit with the
// error's numeric code or 0 on success (spec §4.10 steps 3-5). It exits
// the process directly rather than returning an error so the code isn't
// flattened to cobra's usual 0/1.
func run(cc *cobra.Command, cmd action.Command) error {
	result, actErr := dispatcher.Execute(context.Background(), cmd, newExecutionContext())
	if actErr != nil {
		printActionError(actErr)
		os.Exit(int(actErr.Code))
	}
	return renderResult(cc, result)
}

// printActionError renders actErr: in JSON output mode to stdout as the
// JSON-RPC-shaped error object §6 documents, otherwise as styled text
// with best-effort suggestions and, in --verbose mode, a pointer at the
// matching issue catalog entry.
func printActionError(actErr *action.Error) {
	if jsonFlag {
		out, _ := json.MarshalIndent(map[string]any{
			"jsonrpc": "2.0",
			"error": map[string]any{
				"code":    actErr.Code.JSONRPCCode(),
				"message": actErr.Message,
				"data":    map[string]any{"suggestions": actErr.Suggestions},
			},
		}, "", "  ")
		fmt.Fprintln(os.Stdout, string(out))
		return
	}

	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+actErr.Message)
	for _, s := range actErr.Suggestions {
		fmt.Fprintln(os.Stderr, "  "+subtitleStyle.Render("• ")+s)
	}
	if verboseFlag {
		if id, ok := issueFor(actErr.Code); ok {
			if rendered, renderErr := issue.Get(id).Render(""); renderErr == nil {
				fmt.Fprintln(os.Stderr, rendered)
			}
		}
	}
}

// issueFor maps an action.ErrorCode to the issue catalog entry that
// best explains it, for --verbose error output.
func issueFor(code action.ErrorCode) (issue.Id, bool) {
	switch code {
	case action.CodeAppNotFound:
		return issue.AppNotFoundId, true
	case action.CodePermissionDenied:
		return issue.PermissionDeniedId, true
	case action.CodeConfig:
		return issue.ConfigInvalidId, true
	case action.CodeWindowNotFound:
		return issue.WindowNotFoundId, true
	case action.CodeDisplayNotFound:
		return issue.DisplayNotFoundId, true
	case action.CodeDaemonNotRunning:
		return issue.DaemonNotRunningId, true
	default:
		return 0, false
	}
}
