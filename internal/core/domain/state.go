package domain

import "time"

// StateKeyStartDate is the only key of the persisted state mapping.
const StateKeyStartDate = "start_date"

// SyncState is the resumable cursor: the last day whose record was emitted.
// Before any day has been processed it holds the resolved start date.
type SyncState struct {
	StartDate time.Time
}

// Value returns the state as the mapping written to the state sink.
func (s SyncState) Value() map[string]string {
	return map[string]string{StateKeyStartDate: FormatDate(s.StartDate)}
}

// CheckpointStatus records why a state was persisted.
type CheckpointStatus string

const (
	// CheckpointProgress is written after each successfully emitted day.
	CheckpointProgress CheckpointStatus = "progress"
	// CheckpointCompleted is written when the cursor caught up to the present.
	CheckpointCompleted CheckpointStatus = "completed"
	// CheckpointFailed is written when a fetch failed unrecoverably.
	CheckpointFailed CheckpointStatus = "failed"
)

// Checkpoint is one persisted state in the checkpoint history.
type Checkpoint struct {
	// ID is assigned by the store.
	ID int64

	// RunID identifies the process run that wrote the checkpoint.
	RunID string

	// Stream is the record stream the state belongs to.
	Stream string

	// State is the cursor as persisted.
	State SyncState

	// Status tells whether the run was progressing, completed or failed.
	Status CheckpointStatus

	// CreatedAt is when the checkpoint was written.
	CreatedAt time.Time
}
