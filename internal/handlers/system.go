// SPDX-License-Identifier: MPL-2.0

package handlers

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"time"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/version"
)

// dialTimeout bounds the Status liveness probe so a stale socket that
// nothing accepts on never hangs the command.
const dialTimeout = 200 * time.Millisecond

// Ping always succeeds; front-ends use it to check the daemon can be
// reached at all.
func (s *Set) Ping(ctx context.Context, cmd action.PingCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	return &action.Result{Action: "ping", Data: action.SimpleData{Result: "pong"}}, nil
}

// statusPayload is the Result.Data shape for `status`.
type statusPayload struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid,omitempty"`
	SocketPath string `json:"socket_path"`
	PidPath    string `json:"pid_path"`
}

// Status reports whether the daemon is running, by probing the Unix
// socket, plus the PID read from the pidfile (when readable) and both
// file locations.
func (s *Set) Status(ctx context.Context, cmd action.StatusCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	socketPath, err := config.SocketPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "failed to resolve socket path").Wrap(err).Build()
	}
	pidPath, err := config.PidPath()
	if err != nil {
		return nil, action.NewErrorBuilder(action.CodeGeneral, "failed to resolve pid path").Wrap(err).Build()
	}

	payload := statusPayload{SocketPath: socketPath, PidPath: pidPath}

	conn, dialErr := net.DialTimeout("unix", socketPath, dialTimeout)
	if dialErr == nil {
		_ = conn.Close()
		payload.Running = true
	}

	if pidBytes, readErr := os.ReadFile(pidPath); readErr == nil {
		if pid, parseErr := strconv.Atoi(string(trimNewline(pidBytes))); parseErr == nil {
			payload.PID = pid
		}
	}

	return &action.Result{Action: "status", Data: payload}, nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return b
}

// versionPayload is the Result.Data shape for `version`.
type versionPayload struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Dirty     string `json:"dirty"`
}

// Version reports the build-time metadata baked into the binary via
// -ldflags.
func (s *Set) Version(ctx context.Context, cmd action.VersionCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	return &action.Result{
		Action: "version",
		Data: versionPayload{
			Version:   version.Version,
			Commit:    version.Commit,
			BuildDate: version.BuildDate,
			Dirty:     version.Dirty,
		},
	}, nil
}

// checkPermissionsPayload is the Result.Data shape for
// `check_permissions`.
type checkPermissionsPayload struct {
	Granted bool `json:"granted"`
}

// CheckPermissions reports whether the accessibility backend holds the
// permissions it needs, optionally prompting the OS dialog.
func (s *Set) CheckPermissions(ctx context.Context, cmd action.CheckPermissionsCommand, ec action.ExecutionContext) (*action.Result, *action.Error) {
	granted, err := s.Backend.CheckPermissions(ctx, cmd.Prompt)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, translateBackendErr(err)
	}
	return &action.Result{Action: "check_permissions", Data: checkPermissionsPayload{Granted: granted}}, nil
}
