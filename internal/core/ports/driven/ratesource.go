package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

// RateSource performs a single request for one day's rates.
// Failures are returned as *domain.FetchError; retrying is the caller's concern.
type RateSource interface {
	// Fetch retrieves the rates for date expressed against base.
	Fetch(ctx context.Context, base string, date time.Time) (*domain.RatePayload, error)
}
