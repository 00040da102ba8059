// SPDX-License-Identifier: MPL-2.0

// Package daemon implements cwm's background process: the hotkey and
// app-launch watcher (internal/daemon's hotkeyServer) and the
// JSON-RPC-over-Unix-socket listener (ipcServer) that the CLI, and any
// other client, talks to (spec §4.9).
package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/daemon/serverbase"
)

// Daemon ties together the two long-running sub-servers and the
// config-reload watcher. Both sub-servers embed their own
// serverbase.Base; Daemon itself embeds one too so callers (cmd/cwm's
// `daemon foreground`) get the same start/stop/state vocabulary.
type Daemon struct {
	*serverbase.Base

	provider   config.Provider
	configPath string
	pidPath    string
	socketPath string

	backend    backend.Backend
	dispatcher *action.Dispatcher
	logger     *log.Logger

	cfg     atomic.Pointer[config.Config]
	ipc     *ipcServer
	hotkeys *hotkeyServer
	watcher *fsnotify.Watcher
}

// Option configures a Daemon at construction.
type Option func(*Daemon)

// WithLogger overrides the daemon's logger (default: discard).
func WithLogger(logger *log.Logger) Option {
	return func(d *Daemon) { d.logger = logger }
}

// WithProvider overrides the config.Provider (default: config.NewProvider()).
func WithProvider(p config.Provider) Option {
	return func(d *Daemon) { d.provider = p }
}

// WithPaths overrides the config file, pidfile and socket paths,
// bypassing config.FilePath()/PidPath()/SocketPath() resolution. Used
// by tests; the CLI's --config flag works through CWM_CONFIG instead.
func WithPaths(configPath, pidPath, socketPath string) Option {
	return func(d *Daemon) {
		d.configPath = configPath
		d.pidPath = pidPath
		d.socketPath = socketPath
	}
}

// New builds a Daemon wired to the given backend and dispatcher.
// configPath, pidPath and socketPath default to config.FilePath(),
// config.PidPath() and config.SocketPath() respectively when empty.
func New(dispatcher *action.Dispatcher, b backend.Backend, opts ...Option) *Daemon {
	d := &Daemon{
		Base:       serverbase.NewBase(),
		provider:   config.NewProvider(),
		backend:    b,
		dispatcher: dispatcher,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the currently active configuration. Safe to call
// concurrently with a reload: the pointer swaps atomically and no
// handler ever observes a torn config, since Load always returns a
// fresh, never-mutated-in-place *Config.
func (d *Daemon) Config() *config.Config {
	return d.cfg.Load()
}

func (d *Daemon) newExecutionContext() action.ExecutionContext {
	return action.NewExecutionContext(d.Config(), false, false, d.logger)
}

// Start resolves paths, loads the initial config, claims the pidfile,
// and starts both sub-servers plus the config-reload watcher. Any
// failure tears down whatever already started and returns the error.
func (d *Daemon) Start(ctx context.Context) error {
	if err := d.TransitionToStarting(ctx); err != nil {
		return err
	}

	if err := d.resolvePaths(); err != nil {
		d.TransitionToFailed(err)
		return d.LastError()
	}

	if err := os.MkdirAll(filepath.Dir(d.configPath), 0o755); err != nil {
		d.TransitionToFailed(fmt.Errorf("ensuring config dir: %w", err))
		return d.LastError()
	}

	cfg, _, err := d.provider.Load(d.Context(), config.LoadOptions{FilePath: d.configPath})
	if err != nil {
		d.TransitionToFailed(fmt.Errorf("loading config: %w", err))
		return d.LastError()
	}
	d.cfg.Store(cfg)

	if err := claimPID(d.pidPath); err != nil {
		d.TransitionToFailed(err)
		return d.LastError()
	}

	d.ipc = newIPCServer(d.socketPath, d.dispatcher, d.newExecutionContext, d.logger)
	if err := d.ipc.Start(d.Context()); err != nil {
		_ = releasePID(d.pidPath)
		d.TransitionToFailed(fmt.Errorf("starting ipc server: %w", err))
		return d.LastError()
	}

	d.hotkeys = newHotkeyServer(cfg, d.backend, d.dispatcher, d.newExecutionContext, d.logger)
	if err := d.hotkeys.Start(d.Context()); err != nil {
		_ = d.ipc.Stop()
		_ = releasePID(d.pidPath)
		d.TransitionToFailed(fmt.Errorf("starting hotkey server: %w", err))
		return d.LastError()
	}

	if err := d.startConfigWatcher(); err != nil {
		// Reload-on-change is best-effort: a daemon that can still serve
		// requests over a stale config is better than one that refuses to
		// start at all over a watcher failure.
		d.logger.Warn("config reload watcher unavailable", "error", err)
	} else {
		d.AddGoroutine()
		go d.watchConfig()
	}

	d.TransitionToRunning()
	return nil
}

// Stop shuts down the config watcher and both sub-servers, then
// releases the pidfile. Safe to call multiple times.
func (d *Daemon) Stop() error {
	if !d.TransitionToStopping() {
		d.WaitForShutdown()
		return nil
	}

	if d.watcher != nil {
		_ = d.watcher.Close()
	}
	if d.hotkeys != nil {
		_ = d.hotkeys.Stop()
	}
	if d.ipc != nil {
		_ = d.ipc.Stop()
	}

	d.WaitForShutdown()
	_ = releasePID(d.pidPath)
	d.TransitionToStopped()
	d.CloseErrChannel()
	return nil
}

func (d *Daemon) resolvePaths() error {
	if d.configPath == "" {
		p, err := config.FilePath()
		if err != nil {
			return err
		}
		d.configPath = p
	}
	if d.pidPath == "" {
		p, err := config.PidPath()
		if err != nil {
			return err
		}
		d.pidPath = p
	}
	if d.socketPath == "" {
		p, err := config.SocketPath()
		if err != nil {
			return err
		}
		d.socketPath = p
	}
	return nil
}

func (d *Daemon) startConfigWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	// Watch the containing directory, not the file itself: editors that
	// save by rename-and-replace (atomic save) leave the original inode
	// watch pointing at a now-unlinked file.
	if err := w.Add(filepath.Dir(d.configPath)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching config dir: %w", err)
	}
	d.watcher = w
	return nil
}

// watchConfig reloads the config on every write/create touching
// configPath and swaps the atomic pointer in for any subsequent
// ExecutionContext, restarting hotkeyServer so new/changed shortcuts and
// app rules take effect.
func (d *Daemon) watchConfig() {
	defer d.DoneGoroutine()

	ctx := d.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != d.configPath {
				continue
			}
			if !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			d.reload(ctx)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (d *Daemon) reload(ctx context.Context) {
	cfg, _, err := d.provider.Load(ctx, config.LoadOptions{FilePath: d.configPath})
	if err != nil {
		d.logger.Warn("config reload failed, keeping previous config", "error", err)
		return
	}
	d.cfg.Store(cfg)
	d.logger.Info("config reloaded")

	if d.hotkeys != nil {
		if err := d.hotkeys.Stop(); err != nil {
			d.logger.Warn("stopping hotkey server for reload", "error", err)
		}
	}
	hotkeys := newHotkeyServer(cfg, d.backend, d.dispatcher, d.newExecutionContext, d.logger)
	if err := hotkeys.Start(ctx); err != nil {
		d.logger.Error("restarting hotkey server after reload failed", "error", err)
		return
	}
	d.hotkeys = hotkeys
}
