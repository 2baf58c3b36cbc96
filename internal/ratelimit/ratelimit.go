// Package ratelimit throttles outgoing fetches to a configured request rate.
//
// Design decision: We wrap golang.org/x/time/rate rather than hand-rolling
// a ticker because:
//  1. The token bucket with burst 1 gives exactly the "spaced by 1/rate"
//     behavior we need, measured against a monotonic clock
//  2. An idle limiter accumulates at most one token, so there is no
//     unbounded catch-up burst after a slow fetch
//  3. Wait is context-aware, so an interrupt cancels the sleep
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter spaces successive fetch starts by 1/rate seconds.
// A nil *Limiter is valid and never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter for the given rate in requests per second.
// A rate of zero or less means unlimited: the returned limiter is nil
// and Wait returns immediately.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until the next request is allowed to start, or until the
// context is cancelled. If the previous request already consumed more than
// the interval, Wait returns immediately; the schedule resynchronizes to
// the current time instead of queuing missed slots.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
