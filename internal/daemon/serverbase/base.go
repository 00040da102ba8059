// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Base provides common fields and lifecycle infrastructure for the
// daemon's long-running components. A Base instance is single-use: once
// stopped or failed, create a new instance.
type Base struct {
	// State management (atomic for lock-free reads)
	state atomic.Int32

	// State transition protection
	stateMu sync.Mutex

	// Lifecycle management
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startedCh chan struct{}
	errCh     chan error
	lastErr   error
}

// NewBase creates a new Base with the given options.
// Default error channel buffer size is 1.
func NewBase(opts ...Option) *Base {
	b := &Base{
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	b.state.Store(int32(StateCreated))

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// State returns the current state (atomic, lock-free read).
func (b *Base) State() State {
	return State(b.state.Load())
}

// IsRunning returns true if the component is in the Running state.
func (b *Base) IsRunning() bool {
	return b.State() == StateRunning
}

// Err returns a channel for receiving async errors.
func (b *Base) Err() <-chan error {
	return b.errCh
}

// LastError returns the error that caused the Failed state, or nil.
func (b *Base) LastError() error {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.lastErr
}

// --- Lifecycle helpers for concrete implementations ---

// TransitionToStarting attempts to transition from Created to Starting.
// Returns an error if the current state is not Created or if the context
// is already cancelled. Must be called at the beginning of Start().
func (b *Base) TransitionToStarting(ctx context.Context) error {
	select {
	case <-ctx.Done():
		b.TransitionToFailed(fmt.Errorf("context cancelled before start: %w", ctx.Err()))
		return b.lastErr
	default:
	}

	if !b.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		currentState := State(b.state.Load())
		return fmt.Errorf("cannot start component in state %s", currentState)
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())

	return nil
}

// TransitionToRunning marks the component as running, closing startedCh
// to signal readiness. Must be called once it is ready to serve.
func (b *Base) TransitionToRunning() {
	if b.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		close(b.startedCh)
	}
}

// TransitionToFailed marks the component as failed with the given error.
// Can be called from Starting state on initialization failure.
func (b *Base) TransitionToFailed(err error) {
	b.stateMu.Lock()
	b.lastErr = err
	b.stateMu.Unlock()

	b.state.Store(int32(StateFailed))

	if b.cancel != nil {
		b.cancel()
	}

	select {
	case b.errCh <- err:
	default:
	}
}

// TransitionToStopping attempts to transition to Stopping state. Returns
// true if the transition occurred, false if already stopped/stopping.
// Cancels the context to signal in-flight goroutines.
func (b *Base) TransitionToStopping() bool {
	for {
		currentState := State(b.state.Load())
		switch currentState {
		case StateStopped, StateFailed:
			return false
		case StateCreated:
			if b.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				return false
			}
			continue
		case StateStopping:
			return false
		case StateStarting, StateRunning:
			if !b.state.CompareAndSwap(int32(currentState), int32(StateStopping)) {
				continue
			}
			if b.cancel != nil {
				b.cancel()
			}
			return true
		default:
			return false
		}
	}
}

// TransitionToStopped marks the component as fully stopped. Must be
// called after all tracked goroutines have exited.
func (b *Base) TransitionToStopped() {
	b.state.Store(int32(StateStopped))
}

// WaitForReady blocks until the component is ready or ctx is cancelled.
func (b *Base) WaitForReady(ctx context.Context) error {
	select {
	case <-b.startedCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for component ready: %w", ctx.Err())
	}
}

// WaitForShutdown blocks until every tracked goroutine has completed.
func (b *Base) WaitForShutdown() {
	b.wg.Wait()
}

// Context returns the component's internal context. Returns nil before
// Start() runs.
func (b *Base) Context() context.Context {
	return b.ctx
}

// AddGoroutine increments the WaitGroup counter. Call before starting a
// tracked goroutine.
func (b *Base) AddGoroutine() {
	b.wg.Add(1)
}

// DoneGoroutine decrements the WaitGroup counter. Defer at the start of
// each tracked goroutine.
func (b *Base) DoneGoroutine() {
	b.wg.Done()
}

// SendError sends an error to the error channel (non-blocking, dropped
// if the channel is full).
func (b *Base) SendError(err error) {
	select {
	case b.errCh <- err:
	default:
	}
}

// CloseErrChannel closes the error channel, signalling consumers that no
// more errors will arrive. Call once the component is fully stopped.
func (b *Base) CloseErrChannel() {
	close(b.errCh)
}

// StartedChannel returns the channel closed on transition to Running.
func (b *Base) StartedChannel() <-chan struct{} {
	return b.startedCh
}

// StopRequested reports whether shutdown has been requested, via either
// Stop() or a fatal failure — the daemon's SOCKET_SHOULD_STOP signal
// (spec §5 "Cancellation"). Backed by the internal context rather than a
// separate flag so it can be adapted directly to retry.StopSignal:
//
//	retry.Do(ctx, delay, policy, base.StopRequested, op)
func (b *Base) StopRequested() bool {
	ctx := b.ctx
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
