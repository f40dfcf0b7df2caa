package singer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.RecordSink = (*Writer)(nil)

// Message types.
const (
	TypeSchema = "SCHEMA"
	TypeRecord = "RECORD"
	TypeState  = "STATE"
)

type schemaMessage struct {
	Type          string         `json:"type"`
	Stream        string         `json:"stream"`
	Schema        map[string]any `json:"schema"`
	KeyProperties []string       `json:"key_properties"`
}

type recordMessage struct {
	Type   string              `json:"type"`
	Stream string              `json:"stream"`
	Record domain.ExchangeRate `json:"record"`
}

type stateMessage struct {
	Type  string            `json:"type"`
	Value map[string]string `json:"value"`
}

// Writer emits messages to an io.Writer, one per line.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a writer on out. A nil out writes to stdout.
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out}
}

// WriteSchema emits a SCHEMA message.
func (w *Writer) WriteSchema(stream string, schema map[string]any, keyProperties []string) error {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	return w.write(schemaMessage{
		Type:          TypeSchema,
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

// WriteRecords emits one RECORD message per record, in order.
func (w *Writer) WriteRecords(stream string, records []domain.ExchangeRate) error {
	for _, record := range records {
		if err := w.write(recordMessage{Type: TypeRecord, Stream: stream, Record: record}); err != nil {
			return err
		}
	}
	return nil
}

// WriteState emits a STATE message.
func (w *Writer) WriteState(state domain.SyncState) error {
	return w.write(stateMessage{Type: TypeState, Value: state.Value()})
}

func (w *Writer) write(msg any) error {
	line, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
