// SPDX-License-Identifier: MPL-2.0

package jsonrpc

import (
	"encoding/json"

	"cwm/internal/action"
)

// Response is the wire shape of a JSON-RPC reply (spec §6 "Wire
// protocol"). Exactly one of Result or Error is set. Build it with
// NewResultResponse/NewErrorResponse rather than by hand so the two
// stay mutually exclusive.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  *action.Result  `json:"result,omitempty"`
	Error   *wireError      `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// wireError is the JSON-RPC 2.0 error object shape: exactly code,
// message, and an optional data payload. The domain-level Error's
// Suggestions field (spec §3 "Action error") has no wire field of its
// own; it travels inside data.suggestions alongside any handler-supplied
// Data, since the wire protocol only ever has three error fields.
type wireError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    *wireErrorData `json:"data,omitempty"`
}

type wireErrorData struct {
	Suggestions []string `json:"suggestions,omitempty"`
	Value       any      `json:"value,omitempty"`
}

// NewResultResponse builds a successful Response, echoing id verbatim.
func NewResultResponse(result *action.Result, id json.RawMessage) Response {
	return Response{JSONRPC: "2.0", Result: result, ID: id}
}

// NewErrorResponse builds a failure Response from an action.Error,
// echoing id verbatim.
func NewErrorResponse(actErr *action.Error, id json.RawMessage) Response {
	var data *wireErrorData
	if len(actErr.Suggestions) > 0 || actErr.Data != nil {
		data = &wireErrorData{Suggestions: actErr.Suggestions, Value: actErr.Data}
	}
	return Response{
		JSONRPC: "2.0",
		Error: &wireError{
			Code:    actErr.Code.JSONRPCCode(),
			Message: actErr.Message,
			Data:    data,
		},
		ID: id,
	}
}
