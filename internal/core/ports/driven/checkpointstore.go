package driven

import (
	"context"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

// CheckpointStore keeps a history of persisted states.
type CheckpointStore interface {
	// Save appends a checkpoint.
	Save(ctx context.Context, checkpoint domain.Checkpoint) error

	// Latest returns the most recent checkpoint for a stream.
	// Returns domain.ErrNotFound if none exists.
	Latest(ctx context.Context, stream string) (*domain.Checkpoint, error)

	// List returns up to limit checkpoints for a stream, newest first.
	List(ctx context.Context, stream string, limit int) ([]domain.Checkpoint, error)
}
