package driving

import (
	"context"
	"time"
)

// SyncDriver runs the day-by-day backfill for one base currency.
type SyncDriver interface {
	// Run emits the schema, then one record per day from startDate until the
	// cursor passes the present. The state is persisted on every exit.
	Run(ctx context.Context, base string, startDate time.Time) error
}
