// SPDX-License-Identifier: MPL-2.0

// Package shortcut parses the compact shortcut-action grammar shared by
// config ShortcutConfig/AppRuleConfig entries and the JSON-RPC "action"
// method (spec §6 "Shortcut / app-rule action grammar"):
//
//	focus                  -> no target, needs app
//	maximize               -> optional app
//	move_display:<target>  -> next | prev | <index> | <alias>
//	resize:<size>          -> same grammar as CLI --to
package shortcut
