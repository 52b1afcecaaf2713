// Package ratelimit provides the shared token bucket that gates every DNS
// check the pipeline initiates. It is the only piece of state mutated by
// multiple workers; all mutation happens behind the bucket's own
// synchronization and workers only ever observe the admit decision.
package ratelimit

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrNonPositiveRate is returned for a rate of zero or below. A zero rate
// is a configuration mistake, not a request for "unlimited" or "never".
var ErrNonPositiveRate = errors.New("ratelimit: checks per second must be positive")

// Limiter is a token bucket admitting at most N check-initiations per
// second across all concurrent callers. Capacity equals the configured
// rate; tokens refill continuously at the same rate.
type Limiter struct {
	bucket *rate.Limiter
}

// New creates a limiter admitting perSecond checks per second.
func New(perSecond int) (*Limiter, error) {
	if perSecond <= 0 {
		return nil, ErrNonPositiveRate
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}, nil
}

// Acquire blocks until one token is available, then consumes it. Waiters
// are admitted in request order by the bucket, so every caller is admitted
// within a bounded wait given the steady refill. The only error returned
// is the context's, when the caller is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}
