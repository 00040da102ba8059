// SPDX-License-Identifier: MPL-2.0

// Package action holds the unified command model shared by every
// front-end: the CLI, the IPC socket, the hotkey daemon, and Spotlight
// shortcuts. Every request, whatever its transport, is normalized to a
// Command, resolved against an ExecutionContext by the Dispatcher, and
// produces exactly one ActionResult or ActionError.
//
// No front-end implements action semantics itself; front-ends only
// translate to and from Command, ActionResult, and ActionError.
package action
