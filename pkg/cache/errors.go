package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures talking to a remote cache backend. Operations
// run through [Backoff.Do] are retried only when their error wraps it.
var ErrNetwork = errors.New("cache backend unreachable")

// Backoff retries operations against a remote backend with a doubling delay.
type Backoff struct {
	Attempts int           // total tries; values below 1 mean a single try
	Delay    time.Duration // wait before the second try
}

// DefaultBackoff is used when connecting to Redis.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do runs op until it succeeds, fails with an error that does not wrap
// ErrNetwork, or runs out of attempts. A canceled ctx stops the wait between
// attempts and returns ctx.Err().
func (b Backoff) Do(ctx context.Context, op func(context.Context) error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil || !errors.Is(err, ErrNetwork) || attempt >= b.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
