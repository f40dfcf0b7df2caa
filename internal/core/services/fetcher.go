package services

import (
	"context"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// RateFetcher retrieves one day's rates, retrying transient upstream failures.
type RateFetcher struct {
	source  driven.RateSource
	policy  RetryPolicy
	log     driven.Logger
	metrics driven.Metrics
}

// NewRateFetcher wraps source with policy. metrics may be nil.
func NewRateFetcher(source driven.RateSource, policy RetryPolicy, log driven.Logger, metrics driven.Metrics) *RateFetcher {
	return &RateFetcher{
		source:  source,
		policy:  policy,
		log:     log,
		metrics: metrics,
	}
}

// Fetch returns the payload for date, or the last failure once retries are
// exhausted or a terminal status is seen.
func (f *RateFetcher) Fetch(ctx context.Context, base string, date time.Time) (*domain.RatePayload, error) {
	var payload *domain.RatePayload

	err := f.policy.Do(ctx, func(ctx context.Context) error {
		p, err := f.source.Fetch(ctx, base, date)
		if err != nil {
			return err
		}
		payload = p
		return nil
	}, func(a Attempt) {
		f.logAttempt(date, a)
	})
	if err != nil {
		return nil, err
	}

	f.observe(driven.OutcomeSuccess)
	return payload, nil
}

func (f *RateFetcher) logAttempt(date time.Time, a Attempt) {
	outcome := driven.OutcomeTerminal
	if a.WillRetry {
		outcome = driven.OutcomeRetryable
	}
	f.observe(outcome)

	day := domain.FormatDate(date)
	if fe, ok := domain.AsFetchError(a.Err); ok && fe.StatusCode != 0 {
		f.log.Warn("Attempt %d/%d for %s failed (status %d): %s", a.Number, f.policy.MaxAttempts, day, fe.StatusCode, fe.Body)
	} else {
		f.log.Warn("Attempt %d/%d for %s failed: %v", a.Number, f.policy.MaxAttempts, day, a.Err)
	}

	if a.WillRetry {
		f.log.Info("Retrying %s in ~%s", day, f.policy.Interval)
	} else {
		f.log.Debug("Giving up on %s after %d attempt(s)", day, a.Number)
	}
}

func (f *RateFetcher) observe(outcome string) {
	if f.metrics != nil {
		f.metrics.FetchAttempt(outcome)
	}
}
