// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/daemon/serverbase"
	"cwm/internal/shortcut"
)

// hotkeyServer is the daemon's other long-running component alongside
// ipcServer (spec §4.9 bullets 1-2): it owns global hotkey registration
// and the app-launch watcher, each driven by the same cfg. Like
// ipcServer it embeds serverbase.Base for start/stop lifecycle rather
// than an ad-hoc goroutine + bool.
type hotkeyServer struct {
	*serverbase.Base

	cfg        *config.Config
	registrar  hotkeyRegistrar
	backend    backend.Backend
	dispatcher *action.Dispatcher
	newEC      func() action.ExecutionContext
	logger     *log.Logger
}

func newHotkeyServer(cfg *config.Config, b backend.Backend, dispatcher *action.Dispatcher, newEC func() action.ExecutionContext, logger *log.Logger) *hotkeyServer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &hotkeyServer{
		Base:       serverbase.NewBase(),
		cfg:        cfg,
		registrar:  newHotkeyRegistrar(),
		backend:    b,
		dispatcher: dispatcher,
		newEC:      newEC,
		logger:     logger,
	}
}

// Start registers every configured shortcut and begins the hotkey event
// loop and app-launch watcher. Per spec §4.9 bullet 1, any single
// registration failure (most commonly a combination already bound by
// another application) fails the whole daemon start.
func (s *hotkeyServer) Start(ctx context.Context) error {
	if err := s.TransitionToStarting(ctx); err != nil {
		return err
	}

	for _, sc := range s.cfg.Shortcuts {
		combo, err := parseKeys(sc.Keys)
		if err != nil {
			s.TransitionToFailed(fmt.Errorf("shortcut %q: %w", sc.Name, err))
			return s.LastError()
		}
		if err := s.registrar.Register(sc.Name, combo); err != nil {
			s.TransitionToFailed(fmt.Errorf("shortcut %q: %w", sc.Name, err))
			return s.LastError()
		}
	}

	events, err := s.registrar.Start()
	if err != nil {
		s.TransitionToFailed(fmt.Errorf("starting hotkey event loop: %w", err))
		return s.LastError()
	}

	s.AddGoroutine()
	go s.runHotkeyLoop(events)

	s.AddGoroutine()
	go s.runLaunchWatcher()

	s.TransitionToRunning()
	return nil
}

func (s *hotkeyServer) Stop() error {
	if !s.TransitionToStopping() {
		s.WaitForShutdown()
		return nil
	}
	_ = s.registrar.Close()
	s.WaitForShutdown()
	s.TransitionToStopped()
	s.CloseErrChannel()
	return nil
}

func (s *hotkeyServer) runHotkeyLoop(events <-chan hotkeyEvent) {
	defer s.DoneGoroutine()

	byName := make(map[string]config.ShortcutConfig, len(s.cfg.Shortcuts))
	for _, sc := range s.cfg.Shortcuts {
		byName[sc.Name] = sc
	}

	ctx := s.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			sc, ok := byName[evt.ID]
			if !ok {
				continue
			}
			s.dispatchShortcut(ctx, sc)
		}
	}
}

func (s *hotkeyServer) dispatchShortcut(ctx context.Context, sc config.ShortcutConfig) {
	// A hotkey press has no wire request to carry a JSON-RPC id, but it is
	// dispatched exactly like the IPC "action" method (spec §4.9 bullet
	// 1); mint one here so log lines for this press correlate the same
	// way a real IPC request's id would.
	requestID := uuid.NewString()

	parsed, err := shortcut.Parse(sc.Action)
	if err != nil {
		s.logger.Error("hotkey has an invalid action", "request_id", requestID, "shortcut", sc.Name, "action", sc.Action, "error", err)
		return
	}
	cmd, err := parsed.ToCommand(sc.App, nil)
	if err != nil {
		s.logger.Error("hotkey action could not be built", "request_id", requestID, "shortcut", sc.Name, "error", err)
		return
	}

	ec := s.newEC()
	if _, actErr := s.dispatcher.Execute(ctx, cmd, ec); actErr != nil {
		s.logger.Warn("hotkey action failed", "request_id", requestID, "shortcut", sc.Name, "error", actErr.Error())
	}
}

func (s *hotkeyServer) runLaunchWatcher() {
	defer s.DoneGoroutine()

	ctx := s.Context()
	watcher := newLaunchWatcher(s.backend)
	for app := range watcher.watch(ctx) {
		rule, ok := matchAppRule(app, s.cfg.AppRules)
		if !ok {
			continue
		}
		delay := ruleDelay(rule, s.cfg)
		go triggerAppRule(ctx, s.dispatcher, s.newEC(), app, rule, delay)
	}
}
