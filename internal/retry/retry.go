// SPDX-License-Identifier: MPL-2.0

package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Policy configures the exponential backoff applied between retry attempts.
// The wait before attempt k (k starting at 1) is DelayMS * Backoff^(k-1)
// milliseconds.
type Policy struct {
	// Count is the maximum number of attempts, including the first.
	Count int
	// DelayMS is the base delay in milliseconds applied before the second
	// attempt; later attempts scale it by Backoff.
	DelayMS int
	// Backoff is the per-attempt growth factor.
	Backoff float64
}

// DefaultPolicy matches the handler defaults in the window-state retry
// contract: 10 attempts, 100ms base delay, 1.5x backoff.
func DefaultPolicy() Policy {
	return Policy{Count: 10, DelayMS: 100, Backoff: 1.5}
}

// DefaultInitialDelay is 500ms, the same as the config's default delay_ms.
// The daemon's app-rule evaluator waits the configured delay_ms rather
// than this constant.
const DefaultInitialDelay = 500 * time.Millisecond

func (p Policy) wait(attempt int) time.Duration {
	factor := math.Pow(p.Backoff, float64(attempt))
	return time.Duration(float64(p.DelayMS) * factor * float64(time.Millisecond))
}

func (p Policy) attempts() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

// StopSignal reports whether an in-flight retry loop has been asked to
// abort out of band, independent of ctx cancellation.
// serverbase.Base.StopRequested has this shape; the window handlers in
// internal/handlers pass nil.
type StopSignal func() bool

// ErrStopped is returned when a retry loop observes a true StopSignal
// between attempts.
var ErrStopped = fmt.Errorf("retry aborted: stop requested")

// Op is a single retry attempt. It reports whether the failure is
// transient (worth retrying) and the error observed. A non-retryable
// error (permission denied, malformed arguments, missing display) should
// be returned with retry=false so the loop exits immediately.
type Op func(attempt int) (retry bool, err error)

// Do runs op under the given policy, waiting initialDelay before the first
// attempt (pass 0 for synchronous callers that should not wait). Between
// attempts it sleeps for policy.wait(k), checking ctx and stop for early
// exit. On exhaustion it returns the most recent error observed.
//
// stop may be nil, in which case only ctx cancellation can interrupt the
// wait.
func Do(ctx context.Context, initialDelay time.Duration, policy Policy, stop StopSignal, op Op) error {
	if initialDelay > 0 {
		if err := sleep(ctx, stop, initialDelay); err != nil {
			return err
		}
	}

	var lastErr error
	for attempt := range policy.attempts() {
		if attempt > 0 {
			if err := checkAbort(ctx, stop); err != nil {
				return err
			}
			if err := sleep(ctx, stop, policy.wait(attempt-1)); err != nil {
				return err
			}
		}

		retryable, err := op(attempt)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func checkAbort(ctx context.Context, stop StopSignal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("retry aborted: %w", err)
	}
	if stop != nil && stop() {
		return ErrStopped
	}
	return nil
}

func sleep(ctx context.Context, stop StopSignal, d time.Duration) error {
	if d <= 0 {
		return checkAbort(ctx, stop)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	if stop == nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
			return nil
		}
	}

	poll := time.NewTicker(10 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
			return nil
		case <-poll.C:
			if stop() {
				return ErrStopped
			}
		}
	}
}
