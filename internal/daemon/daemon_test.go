// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cwm/internal/action"
	"cwm/internal/backend"
	"cwm/internal/config"
	"cwm/internal/daemon/serverbase"
)

// memProvider loads from whatever file LoadOptions.FilePath names,
// re-reading it fresh each call, so reload tests can mutate the file on
// disk and expect the next Load to see it.
type memProvider struct{}

func (memProvider) Load(_ context.Context, opts config.LoadOptions) (*config.Config, string, error) {
	raw, err := os.ReadFile(opts.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.DefaultConfig(), opts.FilePath, nil
		}
		return nil, "", err
	}
	var cfg config.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, "", err
	}
	applyDefaultsForTest(&cfg)
	return &cfg, opts.FilePath, nil
}

// applyDefaultsForTest fills in the zero-value defaults DefaultConfig
// sets, since memProvider unmarshals directly without viper's default
// layer.
func applyDefaultsForTest(cfg *config.Config) {
	if cfg.InitialDelayMS == 0 {
		cfg.InitialDelayMS = config.DefaultConfig().InitialDelayMS
	}
}

func TestDaemon_StartStop(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.ResetConfigDirOverride)

	d := New(
		action.NewDispatcher(action.Handlers{}),
		backend.NewMock(),
		WithProvider(memProvider{}),
		WithPaths(configPath, filepath.Join(dir, "cwm.pid"), filepath.Join(dir, "cwm.sock")),
	)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if d.State() != serverbase.StateRunning {
		t.Fatalf("State() = %v, want StateRunning", d.State())
	}
	if _, err := os.Stat(filepath.Join(dir, "cwm.pid")); err != nil {
		t.Errorf("expected pidfile to exist: %v", err)
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cwm.pid")); !os.IsNotExist(err) {
		t.Errorf("expected pidfile to be removed after Stop, err = %v", err)
	}
}

func TestDaemon_RejectsSecondInstance(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	os.WriteFile(configPath, []byte(`{}`), 0o644)
	pidPath := filepath.Join(dir, "cwm.pid")
	socketPath := filepath.Join(dir, "cwm.sock")

	first := New(action.NewDispatcher(action.Handlers{}), backend.NewMock(),
		WithProvider(memProvider{}), WithPaths(configPath, pidPath, socketPath))
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	t.Cleanup(func() { first.Stop() })

	second := New(action.NewDispatcher(action.Handlers{}), backend.NewMock(),
		WithProvider(memProvider{}), WithPaths(configPath, pidPath, filepath.Join(dir, "cwm2.sock")))
	err := second.Start(context.Background())
	if err == nil {
		t.Fatal("expected second daemon to fail to start while first holds the pidfile")
	}
}

func TestDaemon_ReloadsConfigOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"fuzzy_threshold": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(action.NewDispatcher(action.Handlers{}), backend.NewMock(),
		WithProvider(memProvider{}),
		WithPaths(configPath, filepath.Join(dir, "cwm.pid"), filepath.Join(dir, "cwm.sock")))

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { d.Stop() })

	if got := d.Config().FuzzyThreshold; got != 2 {
		t.Fatalf("initial FuzzyThreshold = %d, want 2", got)
	}

	if err := os.WriteFile(configPath, []byte(`{"fuzzy_threshold": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if d.Config().FuzzyThreshold == 5 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("config never reloaded, still FuzzyThreshold = %d", d.Config().FuzzyThreshold)
		case <-time.After(20 * time.Millisecond):
		}
	}
}
