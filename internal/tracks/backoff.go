package tracks

import (
	"context"
	"time"
)

const (
	maxAttempts    = 3
	retryDelay     = 2 * time.Second
	lookupThrottle = 500 * time.Millisecond
)

// Backoff decides how many times a search is attempted and how long to wait
// before each retry.
type Backoff struct {
	Attempts int
	Delay    func(attempt int) time.Duration
}

// FixedBackoff waits the same d before every retry.
func FixedBackoff(attempts int, d time.Duration) Backoff {
	return Backoff{
		Attempts: attempts,
		Delay:    func(int) time.Duration { return d },
	}
}

// delay is Delay(attempt), or the default retry delay when Delay is unset.
func (b Backoff) delay(attempt int) time.Duration {
	if b.Delay == nil {
		return retryDelay
	}
	return b.Delay(attempt)
}

// DefaultBackoff is three attempts two seconds apart.
var DefaultBackoff = FixedBackoff(maxAttempts, retryDelay)

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
