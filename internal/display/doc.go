// SPDX-License-Identifier: MPL-2.0

// Package display resolves symbolic display targets — next, prev, a
// 1-based index, or an alias — into a physical monitor. Aliases come in
// two flavors: four reserved system names (builtin, external, main,
// secondary) computed from the live display list, and user-defined
// aliases that map a name to an ordered list of stable unique display
// ids, resolved against whichever of those ids is currently connected.
package display
