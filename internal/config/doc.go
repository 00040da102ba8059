// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Configuration is loaded from ~/.cwm/config.json (or config.jsonc),
// with CWM_CONFIG overriding the path. The file may contain // and
// /* */ comments, which are stripped before Viper parses it as JSON.
// The package covers the launch-on-no-match default, the fuzzy-match
// threshold, the window-state retry policy, configured hotkeys and
// app-launch rules, and user-defined display aliases.
package config
