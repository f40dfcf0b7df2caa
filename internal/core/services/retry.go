package services

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

// DefaultMaxJitter bounds the random delay added to each retry interval.
const DefaultMaxJitter = 5 * time.Second

// RetryPolicy retries an operation at a constant, jittered interval.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Interval is the fixed wait between attempts.
	Interval time.Duration

	// MaxJitter bounds the uniform random delay added to Interval.
	MaxJitter time.Duration

	// Retryable classifies a failure. Terminal failures stop immediately.
	Retryable func(error) bool

	// Jitter returns a delay in [0, max). Defaults to a uniform draw.
	Jitter func(max time.Duration) time.Duration

	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the policy for upstream fetches: cfg.MaxAttempts
// tries, cfg.RetryInterval apart, retrying 429, 5xx and network faults.
func DefaultRetryPolicy(cfg domain.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Interval:    cfg.RetryInterval,
		MaxJitter:   DefaultMaxJitter,
		Retryable:   domain.IsRetryable,
	}
}

// Attempt describes one failed try, reported before the retry decision is acted on.
type Attempt struct {
	Number    int
	Err       error
	WillRetry bool
}

// Do runs op until it succeeds, fails terminally or attempts run out.
// onFailure is called for every failed attempt. The last error is returned unchanged.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error, onFailure func(Attempt)) error {
	attempts := max(p.MaxAttempts, 1)

	var err error
	for n := 1; n <= attempts; n++ {
		err = op(ctx)
		if err == nil {
			return nil
		}

		willRetry := n < attempts && p.retryable(err)
		if onFailure != nil {
			onFailure(Attempt{Number: n, Err: err, WillRetry: willRetry})
		}
		if !willRetry {
			return err
		}

		if sleepErr := p.sleep(ctx, p.Delay()); sleepErr != nil {
			return err
		}
	}
	return err
}

// Delay returns the wait before the next attempt.
func (p RetryPolicy) Delay() time.Duration {
	return p.Interval + p.jitter()
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable == nil {
		return domain.IsRetryable(err)
	}
	return p.Retryable(err)
}

func (p RetryPolicy) jitter() time.Duration {
	if p.MaxJitter <= 0 {
		return 0
	}
	if p.Jitter != nil {
		return p.Jitter(p.MaxJitter)
	}
	return time.Duration(rand.Int64N(int64(p.MaxJitter)))
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
