package driven

import "github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"

// RecordSink is the write-only output protocol.
type RecordSink interface {
	// WriteSchema declares the shape of a stream's records. Called once per run.
	WriteSchema(stream string, schema map[string]any, keyProperties []string) error

	// WriteRecords emits records for a stream.
	WriteRecords(stream string, records []domain.ExchangeRate) error

	// WriteState emits the resumable cursor.
	WriteState(state domain.SyncState) error
}
