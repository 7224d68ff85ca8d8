// Package wait polls conditions against the application under test.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/cenkalti/backoff/v4"
)

// Default polling parameters.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 250 * time.Millisecond
)

// Options bounds a poll.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Condition reports whether the awaited state holds.
// A non-nil error aborts the poll immediately.
type Condition func(ctx context.Context) (bool, error)

var errNotYet = errors.New("condition not met")

// Until polls cond at a constant interval until it holds, the timeout elapses
// or ctx is canceled. Expiry is reported as domain.ErrWaitTimeout.
func Until(ctx context.Context, opts Options, cond Condition) error {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	pollCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	b := backoff.WithContext(backoff.NewConstantBackOff(opts.Interval), pollCtx)

	err := backoff.Retry(func() error {
		ok, err := cond(pollCtx)
		if err != nil {
			if pollCtx.Err() != nil {
				// The driver call was cut short by our own deadline.
				return errNotYet
			}
			return backoff.Permanent(err)
		}
		if !ok {
			return errNotYet
		}
		return nil
	}, b)
	if err == nil {
		return nil
	}

	if errors.Is(err, errNotYet) || errors.Is(err, context.DeadlineExceeded) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %s", domain.ErrWaitTimeout, opts.Timeout)
	}
	return err
}
