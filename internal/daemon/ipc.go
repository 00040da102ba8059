// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"cwm/internal/action"
	"cwm/internal/daemon/serverbase"
	"cwm/internal/jsonrpc"
)

// ipcServer listens on the Unix domain socket at config.SocketPath()
// (spec §4.9 bullet 3) and dispatches each line-delimited JSON-RPC
// request it receives. It embeds serverbase.Base for the same
// start/stop lifecycle the daemon's other long-running component
// (hotkeyServer) uses, rather than a bare accept-loop goroutine guarded
// by a bool.
type ipcServer struct {
	*serverbase.Base

	socketPath string
	dispatcher *action.Dispatcher
	newEC      func() action.ExecutionContext
	logger     *log.Logger

	mu       sync.Mutex
	listener net.Listener
}

func newIPCServer(socketPath string, dispatcher *action.Dispatcher, newEC func() action.ExecutionContext, logger *log.Logger) *ipcServer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ipcServer{
		Base:       serverbase.NewBase(),
		socketPath: socketPath,
		dispatcher: dispatcher,
		newEC:      newEC,
		logger:     logger,
	}
}

// Start binds the socket and begins accepting connections. It blocks
// until the accept loop is ready or startup fails, mirroring the
// sshserver pattern this package is grounded on.
func (s *ipcServer) Start(ctx context.Context) error {
	if err := s.TransitionToStarting(ctx); err != nil {
		return err
	}

	// A stale socket file from an unclean shutdown makes bind fail with
	// "address already in use" even though nothing is listening.
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.TransitionToFailed(fmt.Errorf("removing stale socket %s: %w", s.socketPath, err))
		return s.LastError()
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(s.Context(), "unix", s.socketPath)
	if err != nil {
		s.TransitionToFailed(fmt.Errorf("listening on %s: %w", s.socketPath, err))
		return s.LastError()
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.AddGoroutine()
	go s.serve()

	s.TransitionToRunning()
	return nil
}

// Stop closes the listener and waits for in-flight connections to
// finish. Safe to call multiple times.
func (s *ipcServer) Stop() error {
	if !s.TransitionToStopping() {
		s.WaitForShutdown()
		return nil
	}

	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		_ = listener.Close()
	}

	s.WaitForShutdown()
	_ = os.Remove(s.socketPath)
	s.TransitionToStopped()
	s.CloseErrChannel()
	return nil
}

func (s *ipcServer) serve() {
	defer s.DoneGoroutine()

	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.SendError(fmt.Errorf("accept: %w", err))
			return
		}

		s.AddGoroutine()
		go s.handleConn(conn)
	}
}

// handleConn reads one JSON-RPC request per line until the client
// disconnects or the server is stopping.
func (s *ipcServer) handleConn(conn net.Conn) {
	defer s.DoneGoroutine()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), 1<<20)

	for scanner.Scan() {
		select {
		case <-s.Context().Done():
			return
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp, skip := s.handleLine(line)
		if skip {
			continue
		}

		out, err := json.Marshal(resp)
		if err != nil {
			s.logger.Error("failed to marshal JSON-RPC response", "error", err)
			continue
		}
		out = append(out, '\n')
		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

// handleLine parses and dispatches a single request line. skip is true
// for notifications, which per spec get no response at all.
func (s *ipcServer) handleLine(line []byte) (resp jsonrpc.Response, skip bool) {
	req, err := jsonrpc.ParseRequest(line)
	if err != nil {
		return jsonrpc.NewErrorResponse(action.NewError(action.CodeInvalidArgs, err.Error()), nil), false
	}

	var cmd action.Command
	var actErr *action.Error
	if req.Method == "action" {
		cmd, actErr = jsonrpc.ToShortcutCommand(req.Params)
	} else {
		cmd, actErr = jsonrpc.ToCommand(req)
	}
	if actErr != nil {
		if req.IsNotification() {
			return jsonrpc.Response{}, true
		}
		return jsonrpc.NewErrorResponse(actErr, req.ID), false
	}

	ec := s.newEC()
	result, actErr := s.dispatcher.Execute(s.Context(), cmd, ec)
	if req.IsNotification() {
		return jsonrpc.Response{}, true
	}
	if actErr != nil {
		return jsonrpc.NewErrorResponse(actErr, req.ID), false
	}
	return jsonrpc.NewResultResponse(result, req.ID), false
}
