// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/daemon"
)

// newDaemonCommand creates the `cwm daemon` command and its
// start/stop/restart/status/foreground/reload subcommands.
func newDaemonCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the background hotkey/app-rule/IPC daemon",
	}

	for _, sub := range []string{"start", "stop", "restart", "status", "reload"} {
		sub := sub
		root.AddCommand(&cobra.Command{
			Use:   sub,
			Short: daemonSubShort[sub],
			Args:  cobra.NoArgs,
			RunE: func(cc *cobra.Command, args []string) error {
				return run(cc, action.DaemonCommand{ExternalSub: action.ExternalSub{Sub: sub}})
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "foreground",
		Short: "Run the daemon attached to this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			return run(cc, action.DaemonCommand{ExternalSub: action.ExternalSub{Sub: "foreground"}})
		},
	})

	return root
}

var daemonSubShort = map[string]string{
	"start":   "Start the daemon, detached from the terminal",
	"stop":    "Stop a running daemon",
	"restart": "Stop, then start the daemon",
	"status":  "Report whether the daemon is running",
	"reload":  "Ask a running daemon to reload its configuration",
}

// daemonHandler implements the daemon external-collaborator commands.
// "foreground" runs the daemon in-process, blocking until SIGINT/SIGTERM;
// the rest operate on a pidfile and a detached child process, since the
// CLI process managing them is always short-lived.
func daemonHandler(ctx context.Context, cmd action.DaemonCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	switch cmd.Sub {
	case "foreground":
		return daemonForeground(ctx, ec)
	case "start":
		return daemonStart(ec)
	case "stop":
		return daemonStop()
	case "restart":
		if _, actErr := daemonStop(); actErr != nil {
			return nil, actErr
		}
		return daemonStart(ec)
	case "status":
		return daemonStatus()
	case "reload":
		return daemonReload()
	default:
		return nil, action.NewError(action.CodeInvalidArgs, "unknown daemon subcommand "+cmd.Sub)
	}
}

func daemonForeground(ctx context.Context, ec action.ExecutionContext) (*action.Result, *action.Error) {
	d := daemon.New(dispatcher, backend.New(), daemon.WithLogger(newLogger()))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Start(sigCtx); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "starting daemon").Wrap(err).Build()
	}
	<-sigCtx.Done()
	if err := d.Stop(); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "stopping daemon").Wrap(err).Build()
	}
	return &action.Result{Action: "daemon", Data: action.SimpleData{Result: "stopped"}}, nil
}

func daemonStart(ec action.ExecutionContext) (*action.Result, *action.Error) {
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving pid path").Wrap(err).Build()
	}
	if _, running, _ := daemon.Status(pidPath); running {
		return nil, action.NewError(action.CodeGeneral, "daemon is already running")
	}

	self, err := os.Executable()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving executable path").Wrap(err).Build()
	}

	child := exec.Command(self, "daemon", "foreground")
	child.Stdout = nil
	child.Stderr = nil
	child.Stdin = nil
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := child.Start(); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "spawning daemon process").Wrap(err).Build()
	}
	_ = child.Process.Release()

	return &action.Result{
		Action: "daemon",
		Data:   action.SimpleData{Result: fmt.Sprintf("started (pid %d)", child.Process.Pid)},
	}, nil
}

func daemonStop() (*action.Result, *action.Error) {
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving pid path").Wrap(err).Build()
	}
	if err := daemon.Stop(pidPath); err != nil {
		return nil, action.NewErrorBuilder(action.CodeDaemonNotRunning, "stopping daemon").Wrap(err).Build()
	}
	return &action.Result{Action: "daemon", Data: action.SimpleData{Result: "stopped"}}, nil
}

func daemonStatus() (*action.Result, *action.Error) {
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving pid path").Wrap(err).Build()
	}
	pid, running, err := daemon.Status(pidPath)
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "reading daemon status").Wrap(err).Build()
	}
	return &action.Result{
		Action: "daemon",
		Data: action.SimpleData{Result: map[string]any{
			"running": running,
			"pid":     pid,
		}},
	}, nil
}

// daemonReload forces the running daemon's config-directory fsnotify
// watcher to fire by updating the config file's mtime; the daemon
// reloads on every write it observes (daemon.go's watchConfig), so no
// separate IPC method is needed.
func daemonReload() (*action.Result, *action.Error) {
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving pid path").Wrap(err).Build()
	}
	if _, running, _ := daemon.Status(pidPath); !running {
		return nil, action.NewError(action.CodeDaemonNotRunning, "daemon is not running")
	}

	path, err := config.FilePath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "resolving config path").Wrap(err).Build()
	}
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "touching config file").Wrap(err).Build()
	}
	return &action.Result{Action: "daemon", Data: action.SimpleData{Result: "reload requested"}}, nil
}
