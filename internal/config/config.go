// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"cwm/pkg/platform"
)

const (
	// AppDirName names the directory holding the config file, socket,
	// pidfile, and install metadata: ~/.cwm on darwin, a cwm
	// subdirectory of the platform config dir elsewhere.
	AppDirName = "cwm"
	// ConfigFileName is the config file's base name, without extension.
	ConfigFileName = "config"
	// EnvConfigPath overrides the default config file path when set.
	EnvConfigPath = "CWM_CONFIG"
	// EnvPrefix is the prefix viper uses for environment-variable
	// overrides of individual config keys (e.g. CWM_LAUNCH=1).
	EnvPrefix = "CWM"
)

// configDirOverride lets tests bypass os.UserHomeDir(), which doesn't
// reliably respect $HOME in every CI environment.
var configDirOverride string

// SetConfigDirOverride sets a custom config directory, for tests only.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// ResetConfigDirOverride clears a test override.
func ResetConfigDirOverride() { configDirOverride = "" }

// Dir returns ~/.cwm on darwin; the Linux and Windows branches (a cwm
// directory under the XDG config dir or %APPDATA%) are kept for
// cross-compilation parity with the teacher even though this tool only
// ships for macOS.
func Dir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case platform.Darwin:
		return filepath.Join(home, "."+AppDirName), nil
	case platform.Windows:
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, AppDirName), nil
	default:
		xdg := os.Getenv("XDG_CONFIG_HOME")
		if xdg == "" {
			xdg = filepath.Join(home, ".config")
		}
		return filepath.Join(xdg, AppDirName), nil
	}
}

// FilePath returns the config file path: $CWM_CONFIG if set, otherwise
// <Dir()>/config.json, or <Dir()>/config.jsonc when only that file
// exists.
func FilePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ConfigFileName+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		alt := filepath.Join(dir, ConfigFileName+".jsonc")
		if _, altErr := os.Stat(alt); altErr == nil {
			return alt, nil
		}
	}
	return path, nil
}

// SchemaPath returns the path to the auto-generated config schema
// document referenced by the config file's $schema field.
func SchemaPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.schema.json"), nil
}

// SocketPath returns the daemon's Unix domain socket path.
func SocketPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cwm.sock"), nil
}

// PidPath returns the daemon's pidfile path.
func PidPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cwm.pid"), nil
}

// VersionPath returns the path to the installed-version metadata file.
func VersionPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "version.json"), nil
}

// EnsureDir creates the config directory if it does not already exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads and parses the config file, applying defaults for any
// field the file omits and CWM_-prefixed environment overrides for
// individual keys. A missing file is not an error: Load returns
// DefaultConfig() and a zero-value path.
func Load() (cfg *Config, path string, err error) {
	path, err = FilePath()
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	applyDefaults(v, DefaultConfig())

	raw, readErr := readFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return DefaultConfig(), "", nil
		}
		return nil, "", readErr
	}

	if err := v.ReadConfig(bytes.NewReader(stripJSONComments(raw))); err != nil {
		return nil, "", fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, "", fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return &out, path, nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return raw, nil
}

// parse decodes a JSONC config document already read into memory,
// applying the same defaults Load does. Used by Provider.Load when a
// caller names an explicit file.
func parse(raw []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	applyDefaults(v, DefaultConfig())

	if err := v.ReadConfig(bytes.NewReader(stripJSONComments(raw))); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &out, nil
}

func applyDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("launch", d.Launch)
	v.SetDefault("fuzzy_threshold", d.FuzzyThreshold)
	v.SetDefault("delay_ms", d.InitialDelayMS)
	v.SetDefault("retry.count", d.Retry.Count)
	v.SetDefault("retry.delay_ms", d.Retry.DelayMS)
	v.SetDefault("retry.backoff", d.Retry.Backoff)
	v.SetDefault("shortcuts", d.Shortcuts)
	v.SetDefault("app_rules", d.AppRules)
	v.SetDefault("display_aliases", d.DisplayAliases)
	v.SetDefault("ui.color_scheme", d.UI.ColorScheme)
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

const configHeader = "// cwm configuration file.\n" +
	"// // and /* */ comments are allowed; this file is JSON otherwise.\n" +
	"// See `cwm config path` for this file's location and `cwm config verify` to validate it.\n"

// Save writes cfg to the config file, creating the config directory if
// necessary. The written file carries a short header comment, matching
// the teacher's CreateDefaultConfig convention, followed by indented
// JSON (comments are a write-once courtesy; Save does not try to
// preserve a previous file's user comments).
func Save(cfg *Config) (string, error) {
	if err := EnsureDir(); err != nil {
		return "", err
	}
	path, err := FilePath()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	buf.Write(data)
	buf.WriteByte('\n')

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return path, nil
}

// CreateDefault writes DefaultConfig() to the config file only if no
// file exists there yet.
func CreateDefault() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return Save(DefaultConfig())
}
