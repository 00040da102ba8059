// SPDX-License-Identifier: MPL-2.0

package action

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed taxonomy of action-layer failures. It is the
// only error type that crosses the dispatcher boundary: matchers return
// "no match" rather than an error, and accessibility-backend failures
// are translated into one of these kinds once, at the handler boundary.
type ErrorCode int

const (
	CodeSuccess          ErrorCode = 0
	CodeGeneral          ErrorCode = 1
	CodeAppNotFound      ErrorCode = 2
	CodePermissionDenied ErrorCode = 3
	CodeInvalidArgs      ErrorCode = 4
	CodeConfig           ErrorCode = 5
	CodeWindowNotFound   ErrorCode = 6
	CodeDisplayNotFound  ErrorCode = 7
	CodeTimeout          ErrorCode = 8
	CodeDaemonNotRunning ErrorCode = 9
)

// String names the ErrorCode for logging and CLI --verbose output.
func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeGeneral:
		return "general"
	case CodeAppNotFound:
		return "app-not-found"
	case CodePermissionDenied:
		return "permission-denied"
	case CodeInvalidArgs:
		return "invalid-args"
	case CodeConfig:
		return "config"
	case CodeWindowNotFound:
		return "window-not-found"
	case CodeDisplayNotFound:
		return "display-not-found"
	case CodeTimeout:
		return "timeout"
	case CodeDaemonNotRunning:
		return "daemon-not-running"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// JSONRPCCode maps a cwm error code to its JSON-RPC wire code,
// -32000 minus the code, e.g. app-not-found (2) becomes -32002.
func (c ErrorCode) JSONRPCCode() int {
	return -32000 - int(c)
}

// Retryable reports whether handlers may retry on this kind of failure.
// Permission-denied, invalid-args, and display-not-found are fatal and
// never retried; app/window-not-found are the transient kinds a retry
// loop is built around.
func (c ErrorCode) Retryable() bool {
	switch c {
	case CodeWindowNotFound, CodeAppNotFound:
		return true
	default:
		return false
	}
}

// Error is the uniform failure value: a code, a human message, best-
// effort suggestions (populated for app-not-found, and with the found
// problems by the CLI's config verify/set errors), and an optional data
// payload carried over JSON-RPC as error.data.
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Data        any

	cause error
}

// NewError constructs an Error with no suggestions or cause. Use
// NewErrorBuilder for the fluent form.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is allows errors.Is(err, someCodeSentinel) style comparisons by code
// when the target is itself an *Error with no cause of its own — chiefly
// useful in tests that only care about the code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// ErrorBuilder is a fluent constructor for Error, mirroring the
// operation/resource/suggestion builder used elsewhere for user-facing
// diagnostics.
type ErrorBuilder struct {
	err Error
}

// NewErrorBuilder starts building an Error of the given code and
// message.
func NewErrorBuilder(code ErrorCode, message string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Code: code, Message: message}}
}

// WithSuggestion adds one suggestion; safe to call multiple times.
func (b *ErrorBuilder) WithSuggestion(s string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, s)
	return b
}

// WithSuggestions adds several suggestions at once.
func (b *ErrorBuilder) WithSuggestions(s ...string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, s...)
	return b
}

// WithData attaches an arbitrary JSON-serializable payload.
func (b *ErrorBuilder) WithData(data any) *ErrorBuilder {
	b.err.Data = data
	return b
}

// Wrap records the underlying cause (not serialized, available via
// errors.Unwrap for logs).
func (b *ErrorBuilder) Wrap(cause error) *ErrorBuilder {
	b.err.cause = cause
	return b
}

// Build returns the constructed Error.
func (b *ErrorBuilder) Build() *Error {
	out := b.err
	return &out
}
