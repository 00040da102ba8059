// SPDX-License-Identifier: MPL-2.0

package action

import (
	"errors"
	"testing"
)

func TestErrorCode_JSONRPCCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeSuccess, -32000},
		{CodeAppNotFound, -32002},
		{CodeDaemonNotRunning, -32009},
	}
	for _, tt := range tests {
		if got := tt.code.JSONRPCCode(); got != tt.want {
			t.Errorf("%s.JSONRPCCode() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	cause := errors.New("window missing")
	err := NewErrorBuilder(CodeWindowNotFound, "no window for Safari").
		WithSuggestion("try again after the app finishes launching").
		WithData(map[string]int{"retry_count": 10}).
		Wrap(cause).
		Build()

	if err.Code != CodeWindowNotFound {
		t.Errorf("unexpected code: %v", err.Code)
	}
	if len(err.Suggestions) != 1 {
		t.Errorf("expected 1 suggestion, got %v", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find cause")
	}
}

func TestErrorCode_Retryable(t *testing.T) {
	t.Parallel()

	if !CodeWindowNotFound.Retryable() {
		t.Error("window-not-found should be retryable")
	}
	if CodePermissionDenied.Retryable() {
		t.Error("permission-denied must never retry")
	}
	if CodeInvalidArgs.Retryable() {
		t.Error("invalid-args must never retry")
	}
}
