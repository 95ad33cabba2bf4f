// Package retry runs operations under an exponential backoff policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/jpillora/backoff"
)

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent wraps err so Do stops retrying and returns it unwrapped.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// OnlyTransient lets Do retry err only when it is marked
// model.ErrTransientFetch or is a deadline. Anything else is returned as a
// permanent model.ErrConfiguration.
func OnlyTransient(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrTransientFetch), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, model.ErrConfiguration):
		return Permanent(err)
	default:
		return Permanent(fmt.Errorf("%w: %w", model.ErrConfiguration, err))
	}
}

// Policy describes how failed attempts are spaced and bounded.
type Policy struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
	// Attempts bounds the number of tries; zero retries until the context ends.
	Attempts int
	// OnRetry is invoked before each backoff sleep.
	OnRetry func(attempt int, err error, wait time.Duration)

	sleep clock.SleepFunc
}

// DefaultPolicy retries forever between 1s and 10s with jitter.
func DefaultPolicy() Policy {
	return Policy{Min: time.Second, Max: 10 * time.Second, Factor: 2, Jitter: true}
}

// Fixed retries forever with a constant delay.
func Fixed(d time.Duration) Policy {
	return Policy{Min: d, Max: d, Factor: 1}
}

// WithSleep returns a copy of the policy that pauses through sleep.
func (p Policy) WithSleep(sleep clock.SleepFunc) Policy {
	p.sleep = sleep
	return p
}

// Do calls op until it succeeds, returns a permanent error, the attempt
// budget is exhausted, or ctx ends. An error returned because ctx ended
// carries the last failure of op as well.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = clock.SleepWithContext
	}
	bo := &backoff.Backoff{Min: p.Min, Max: p.Max, Factor: p.Factor, Jitter: p.Jitter}

	var last error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(last, err)
		}
		err := op(ctx)
		if err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if p.Attempts > 0 && attempt >= p.Attempts {
			return err
		}

		wait := bo.Duration()
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
		last = err
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return errors.Join(last, sleepErr)
		}
	}
}
