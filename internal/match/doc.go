// SPDX-License-Identifier: MPL-2.0

// Package match implements the priority-ordered app/window resolver
// (spec §4.1): exact, then prefix, then regex, then Levenshtein-fuzzy
// matching, walked first across application names and then across
// window titles. The matcher never opens files, never launches
// processes, and never mutates the app list it's given.
package match
