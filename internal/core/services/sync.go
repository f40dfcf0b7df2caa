package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driving"
)

// Ensure SyncDriver implements the interface.
var _ driving.SyncDriver = (*SyncDriver)(nil)

// SyncDriver owns the day cursor: it fetches, normalises and emits one
// record per day and checkpoints the state after each of them.
type SyncDriver struct {
	fetcher     driven.RateSource
	sink        driven.RecordSink
	log         driven.Logger
	checkpoints driven.CheckpointStore
	metrics     driven.Metrics
	now         func() time.Time
	runID       string
}

// SyncOption configures optional SyncDriver collaborators.
type SyncOption func(*SyncDriver)

// WithCheckpointStore records every persisted state in store.
func WithCheckpointStore(store driven.CheckpointStore) SyncOption {
	return func(d *SyncDriver) {
		d.checkpoints = store
	}
}

// WithMetrics reports emitted records to m.
func WithMetrics(m driven.Metrics) SyncOption {
	return func(d *SyncDriver) {
		d.metrics = m
	}
}

// WithClock replaces time.Now for the termination check.
func WithClock(now func() time.Time) SyncOption {
	return func(d *SyncDriver) {
		d.now = now
	}
}

// WithRunID tags checkpoints and log lines with id.
func WithRunID(id string) SyncOption {
	return func(d *SyncDriver) {
		d.runID = id
	}
}

// NewSyncDriver creates a sync driver. fetcher is normally a *RateFetcher.
func NewSyncDriver(fetcher driven.RateSource, sink driven.RecordSink, log driven.Logger, opts ...SyncOption) *SyncDriver {
	d := &SyncDriver{
		fetcher: fetcher,
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run backfills from startDate until the cursor is strictly in the future.
// On an unrecoverable failure the state as of the last emitted day is
// persisted and the failure is returned.
func (d *SyncDriver) Run(ctx context.Context, base string, startDate time.Time) error {
	nextDate := domain.StartOfDay(startDate)
	state := domain.SyncState{StartDate: nextDate}

	d.log.Info("Replicating exchange rate data from %s using base %s", domain.FormatDate(nextDate), base)
	if d.runID != "" {
		d.log.Debug("Run ID: %s", d.runID)
	}

	if err := d.sink.WriteSchema(domain.StreamName, domain.RecordSchema(), domain.KeyProperties()); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	for !nextDate.After(d.now()) {
		if err := d.syncDay(ctx, base, nextDate); err != nil {
			return d.fail(ctx, state, err)
		}

		state = domain.SyncState{StartDate: nextDate}
		nextDate = domain.NextDay(nextDate)

		if err := d.persist(ctx, state, domain.CheckpointProgress); err != nil {
			return d.fail(ctx, state, err)
		}
	}

	if err := d.persist(ctx, state, domain.CheckpointCompleted); err != nil {
		return err
	}

	d.log.Info("Tap exiting normally")
	return nil
}

// syncDay fetches, normalises and emits a single day.
func (d *SyncDriver) syncDay(ctx context.Context, base string, date time.Time) error {
	d.log.Debug("Fetching rates for %s", domain.FormatDate(date))

	payload, err := d.fetcher.Fetch(ctx, base, date)
	if err != nil {
		return err
	}

	record, err := domain.Normalise(*payload)
	if err != nil {
		return fmt.Errorf("normalise %s: %w", domain.FormatDate(date), err)
	}

	if err := d.sink.WriteRecords(domain.StreamName, []domain.ExchangeRate{record}); err != nil {
		return fmt.Errorf("write record %s: %w", domain.FormatDate(date), err)
	}

	if d.metrics != nil {
		d.metrics.RecordEmitted(date)
	}
	return nil
}

// fail logs err as fatal, persists state on a best-effort basis and returns err.
func (d *SyncDriver) fail(ctx context.Context, state domain.SyncState, err error) error {
	if fe, ok := domain.AsFetchError(err); ok && fe.StatusCode != 0 {
		d.log.Fatal("Error on %s; received status %d: %s", fe.URL, fe.StatusCode, fe.Body)
	} else if ok {
		d.log.Fatal("Error on %s: %v", fe.URL, fe.Err)
	} else {
		d.log.Fatal("Sync failed: %v", err)
	}

	if perr := d.persist(ctx, state, domain.CheckpointFailed); perr != nil {
		d.log.Error("Failed to persist state %s: %v", domain.FormatDate(state.StartDate), perr)
	}
	return err
}

// persist emits state to the sink and appends it to the checkpoint history.
func (d *SyncDriver) persist(ctx context.Context, state domain.SyncState, status domain.CheckpointStatus) error {
	if err := d.sink.WriteState(state); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	if d.checkpoints == nil {
		return nil
	}

	checkpoint := domain.Checkpoint{
		RunID:     d.runID,
		Stream:    domain.StreamName,
		State:     state,
		Status:    status,
		CreatedAt: d.now().UTC(),
	}
	// History must be written even when the run is being torn down.
	if err := d.checkpoints.Save(context.WithoutCancel(ctx), checkpoint); err != nil {
		d.log.Warn("Failed to save checkpoint: %v", err)
	}
	return nil
}
