package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

// mockSource implements driven.RateSource with a scripted response per call.
type mockSource struct {
	calls   []time.Time
	respond func(call int, base string, date time.Time) (*domain.RatePayload, error)
}

func (m *mockSource) Fetch(_ context.Context, base string, date time.Time) (*domain.RatePayload, error) {
	m.calls = append(m.calls, date)
	if m.respond == nil {
		return payloadFor(base, date), nil
	}
	return m.respond(len(m.calls), base, date)
}

func payloadFor(base string, date time.Time) *domain.RatePayload {
	return &domain.RatePayload{
		Base:  base,
		Date:  domain.FormatDate(date),
		Rates: map[string]float64{"EUR": 0.9, "GBP": 0.8},
	}
}

func statusError(status int, body string) *domain.FetchError {
	return &domain.FetchError{
		StatusCode: status,
		URL:        "https://api.test/2020-01-02?base=USD",
		Body:       body,
	}
}

// mockSink implements driven.RecordSink and records every call.
type mockSink struct {
	schemas   []string
	keyProps  [][]string
	records   []domain.ExchangeRate
	states    []domain.SyncState
	schemaErr error
	recordErr error
	stateErr  error
}

func (m *mockSink) WriteSchema(stream string, _ map[string]any, keyProperties []string) error {
	if m.schemaErr != nil {
		return m.schemaErr
	}
	m.schemas = append(m.schemas, stream)
	m.keyProps = append(m.keyProps, keyProperties)
	return nil
}

func (m *mockSink) WriteRecords(_ string, records []domain.ExchangeRate) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, records...)
	return nil
}

func (m *mockSink) WriteState(state domain.SyncState) error {
	if m.stateErr != nil {
		return m.stateErr
	}
	m.states = append(m.states, state)
	return nil
}

func (m *mockSink) lastState() domain.SyncState {
	if len(m.states) == 0 {
		return domain.SyncState{}
	}
	return m.states[len(m.states)-1]
}

// mockMetrics implements driven.Metrics.
type mockMetrics struct {
	attempts map[string]int
	emitted  []time.Time
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{attempts: make(map[string]int)}
}

func (m *mockMetrics) FetchAttempt(outcome string) { m.attempts[outcome]++ }
func (m *mockMetrics) RecordEmitted(date time.Time) { m.emitted = append(m.emitted, date) }

// sleepRecorder replaces the retry timer.
type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return s.err
}

var errBoom = errors.New("boom")

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
