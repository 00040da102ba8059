// SPDX-License-Identifier: MPL-2.0

// Package jsonrpc is the bridge between the daemon's wire protocol and
// the internal command model (spec §4.8): it parses a JSON-RPC 2.0
// request into an action.Command, applying the same parameter-shape and
// structured-string parsing rules the CLI uses, and serializes an
// action.Result/action.Error back into a JSON-RPC response.
package jsonrpc
