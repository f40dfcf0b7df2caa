package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// Ensure SyncMetrics implements the interface.
var _ driven.Metrics = (*SyncMetrics)(nil)

// SyncMetrics holds the collectors for one run.
type SyncMetrics struct {
	registry *prometheus.Registry

	FetchAttemptsTotal   *prometheus.CounterVec
	RecordsEmittedTotal  prometheus.Counter
	CursorTimestampGauge prometheus.Gauge
}

// NewSyncMetrics creates the collectors on a fresh registry.
func NewSyncMetrics() *SyncMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &SyncMetrics{
		registry: registry,

		FetchAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tap_exchangerates_fetch_attempts_total",
				Help: "Requests made to the rates API, by outcome",
			},
			[]string{"outcome"},
		),

		RecordsEmittedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tap_exchangerates_records_emitted_total",
				Help: "Exchange rate records written to the output",
			},
		),

		CursorTimestampGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tap_exchangerates_cursor_timestamp_seconds",
				Help: "Unix time of the last day emitted",
			},
		),
	}
}

// FetchAttempt records one upstream request and its outcome.
func (m *SyncMetrics) FetchAttempt(outcome string) {
	m.FetchAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordEmitted records a record written for date.
func (m *SyncMetrics) RecordEmitted(date time.Time) {
	m.RecordsEmittedTotal.Inc()
	m.CursorTimestampGauge.Set(float64(date.Unix()))
}

// Registry exposes the underlying registry.
func (m *SyncMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all collectors to path in the text exposition format.
// The file is replaced atomically.
func (m *SyncMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
