// SPDX-License-Identifier: MPL-2.0

// Package model holds the leaf data types shared by the matcher, the
// display resolver, the accessibility backend, and the action layer:
// AppInfo, Window, Rect, Display, Match, and MatchInfo. None of these
// types carry behavior beyond simple accessors; they exist so that
// packages higher in the dependency graph can agree on shapes without
// importing each other.
package model
