// Package retry implements an explicit retry policy for outbound calls:
// a bounded number of attempts with exponential backoff, gated by a
// caller-supplied predicate deciding which errors are worth retrying.
package retry

import (
	"context"
	"time"
)

// Policy describes how a call is retried
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Always treats every error as retriable
func Always(error) bool { return true }

// Do runs fn up to p.Attempts times, sleeping BaseDelay, 2*BaseDelay,
// 4*BaseDelay, ... (capped at MaxDelay) between attempts. It stops early
// when fn succeeds, when retriable returns false, or when ctx is done,
// and returns the last error observed.
func Do(ctx context.Context, p Policy, fn func() error, retriable func(error) bool) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}

		if err = fn(); err == nil {
			return nil
		}
		if !retriable(err) {
			return err
		}
	}
	return err
}
