package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// Ensure CheckpointStore implements the interface.
var _ driven.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointStore is an in-memory implementation of driven.CheckpointStore.
type CheckpointStore struct {
	mu          sync.RWMutex
	nextID      int64
	checkpoints []domain.Checkpoint
}

// NewCheckpointStore creates a new in-memory checkpoint store.
func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{nextID: 1}
}

// Save appends a checkpoint.
func (s *CheckpointStore) Save(_ context.Context, checkpoint domain.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkpoint.ID = s.nextID
	s.nextID++
	s.checkpoints = append(s.checkpoints, checkpoint)
	return nil
}

// Latest returns the most recent checkpoint for a stream.
func (s *CheckpointStore) Latest(ctx context.Context, stream string) (*domain.Checkpoint, error) {
	list, err := s.List(ctx, stream, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &list[0], nil
}

// List returns up to limit checkpoints for a stream, newest first.
// A non-positive limit returns all of them.
func (s *CheckpointStore) List(_ context.Context, stream string, limit int) ([]domain.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Checkpoint
	for i := len(s.checkpoints) - 1; i >= 0; i-- {
		if s.checkpoints[i].Stream != stream {
			continue
		}
		result = append(result, s.checkpoints[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
