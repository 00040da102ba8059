// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"cwm/internal/display"
)

// Verify runs a set of structural checks against cfg and returns one
// message per problem found. An empty result means cfg is valid. Verify
// never mutates cfg and never touches the filesystem; callers load the
// config first.
func Verify(cfg *Config) []string {
	var problems []string

	if cfg.FuzzyThreshold < 0 {
		problems = append(problems, "fuzzy_threshold must not be negative")
	}
	if cfg.Retry.Count < 1 {
		problems = append(problems, "retry.count must be at least 1")
	}
	if cfg.Retry.DelayMS < 0 {
		problems = append(problems, "retry.delay_ms must not be negative")
	}
	if cfg.Retry.Backoff < 1 {
		problems = append(problems, "retry.backoff must be at least 1 (use 1 for constant delay)")
	}
	if cfg.InitialDelayMS < 0 {
		problems = append(problems, "delay_ms must not be negative")
	}

	for name := range cfg.DisplayAliases {
		if err := display.ValidateAliasName(name); err != nil {
			problems = append(problems, fmt.Sprintf("display_aliases: %v", err))
		}
	}

	seen := make(map[string]bool, len(cfg.Shortcuts))
	for _, s := range cfg.Shortcuts {
		if s.Keys == "" {
			problems = append(problems, fmt.Sprintf("shortcut %q: keys must not be empty", s.Name))
			continue
		}
		if seen[s.Keys] {
			problems = append(problems, fmt.Sprintf("shortcut %q: keys %q duplicate another shortcut", s.Name, s.Keys))
		}
		seen[s.Keys] = true
		if s.Action == "" {
			problems = append(problems, fmt.Sprintf("shortcut %q: action must not be empty", s.Name))
		}
	}

	for _, r := range cfg.AppRules {
		if r.AppPrefix == "" {
			problems = append(problems, "app_rules: app_prefix must not be empty")
		}
		if r.Action == "" {
			problems = append(problems, fmt.Sprintf("app_rules: %q: action must not be empty", r.AppPrefix))
		}
		if r.DelayMS != nil && *r.DelayMS < 0 {
			problems = append(problems, fmt.Sprintf("app_rules: %q: delay_ms must not be negative", r.AppPrefix))
		}
	}

	return problems
}
