// SPDX-License-Identifier: MPL-2.0

package action

import (
	"io"

	"github.com/charmbracelet/log"

	"cwm/internal/config"
)

// ExecutionContext is the ambient-free bundle threaded explicitly to
// every handler: the loaded configuration, a verbosity flag, whether the
// caller is the interactive CLI, and a logger. No handler reaches for
// global state; everything it needs arrives here.
type ExecutionContext struct {
	Config  *config.Config
	Verbose bool
	// IsCLI is true only for the interactive CLI front-end. IPC requests
	// and hotkey-triggered commands run with IsCLI false, which is what
	// makes Command.IsInteractive() commands rejected for them.
	IsCLI bool
	// Logger is never nil; callers that don't care about logging still
	// get a discarding logger so handlers never nil-check it.
	Logger *log.Logger
}

// NewExecutionContext builds an ExecutionContext, defaulting Logger to a
// silent logger when none is supplied.
func NewExecutionContext(cfg *config.Config, verbose, isCLI bool, logger *log.Logger) ExecutionContext {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return ExecutionContext{Config: cfg, Verbose: verbose, IsCLI: isCLI, Logger: logger}
}
