// SPDX-License-Identifier: MPL-2.0

// Package backend declares the accessibility-backend interface the
// action handlers depend on, and provides the two implementations this
// repository ships: a darwin build using osascript/System Events, and
// an in-memory fake for tests. The backend is an external collaborator
// (it is not part of the action layer's core) — handlers translate its
// failures into the action-layer error taxonomy, never forward them.
package backend
