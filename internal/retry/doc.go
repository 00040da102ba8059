// SPDX-License-Identifier: MPL-2.0

// Package retry implements the bounded exponential-backoff loop used by
// handlers that touch live window state: a window may not exist yet between
// the moment an app is launched and the moment its first window appears, and
// a resize or move may take a frame or two to converge.
package retry
