// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config holds the full cwm configuration: the launch-on-no-match
	// default, the fuzzy-match threshold, the window-state retry policy,
	// configured hotkeys and app-launch rules, and user-defined display
	// aliases.
	Config struct {
		// Launch is the global default for whether window-command
		// handlers launch an app that has no running match. Per-command
		// --launch/--no-launch flags override this.
		Launch bool `json:"launch" mapstructure:"launch"`
		// FuzzyThreshold is the maximum Levenshtein distance the matcher
		// accepts for a fuzzy match.
		FuzzyThreshold int `json:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
		// InitialDelayMS is the wait, in milliseconds, before the first
		// attempt of a launch-on-match flow or an app-rule trigger.
		InitialDelayMS int `json:"delay_ms" mapstructure:"delay_ms"`
		// Retry configures the exponential backoff applied to handlers
		// that touch live window state.
		Retry RetryConfig `json:"retry" mapstructure:"retry"`
		// Shortcuts are global hotkey bindings registered by the daemon.
		Shortcuts []ShortcutConfig `json:"shortcuts" mapstructure:"shortcuts"`
		// AppRules are evaluated, in order, against every app-launch
		// notification the daemon observes.
		AppRules []AppRuleConfig `json:"app_rules" mapstructure:"app_rules"`
		// DisplayAliases maps a user-chosen alias name to its ordered
		// unique display id list.
		DisplayAliases map[string]DisplayAliasConfig `json:"display_aliases" mapstructure:"display_aliases"`
		// UI configures CLI text-mode rendering.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RetryConfig is the window-state retry policy: up to Count
	// attempts, waiting DelayMS * Backoff^k between them.
	RetryConfig struct {
		Count   int     `json:"count" mapstructure:"count"`
		DelayMS int     `json:"delay_ms" mapstructure:"delay_ms"`
		Backoff float64 `json:"backoff" mapstructure:"backoff"`
	}

	// ShortcutConfig binds a key combination to a shortcut-action string
	// (see internal/shortcut), optionally scoped to one application.
	ShortcutConfig struct {
		Name   string `json:"name" mapstructure:"name"`
		Keys   string `json:"keys" mapstructure:"keys"`
		Action string `json:"action" mapstructure:"action"`
		App    string `json:"app,omitempty" mapstructure:"app"`
	}

	// AppRuleConfig applies Action to an app whose name matches AppPrefix
	// (case-insensitive) when it launches, after DelayMS (falling back to
	// the global InitialDelayMS when nil).
	AppRuleConfig struct {
		AppPrefix string `json:"app_prefix" mapstructure:"app_prefix"`
		Action    string `json:"action" mapstructure:"action"`
		DelayMS   *int   `json:"delay_ms,omitempty" mapstructure:"delay_ms"`
	}

	// DisplayAliasConfig is the on-disk shape of a user display alias.
	DisplayAliasConfig struct {
		UniqueIDs   []string `json:"unique_ids" mapstructure:"unique_ids"`
		Description string   `json:"description,omitempty" mapstructure:"description"`
	}

	// UIConfig configures the CLI's default (non-JSON) text output.
	UIConfig struct {
		ColorScheme string `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool   `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file exists and
// no overrides are given, matching the defaults named in the retry and
// matcher specification (fuzzy threshold 2; retry count 10, delay 100ms,
// backoff 1.5; initial delay 500ms).
func DefaultConfig() *Config {
	return &Config{
		Launch:         false,
		FuzzyThreshold: 2,
		InitialDelayMS: 500,
		Retry: RetryConfig{
			Count:   10,
			DelayMS: 100,
			Backoff: 1.5,
		},
		Shortcuts:      []ShortcutConfig{},
		AppRules:       []AppRuleConfig{},
		DisplayAliases: map[string]DisplayAliasConfig{},
		UI: UIConfig{
			ColorScheme: "auto",
			Verbose:     false,
		},
	}
}
