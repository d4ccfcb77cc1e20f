package payout

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStatusRepository implements StatusRepository using an in-memory map.
// Used in unit tests.
type InMemoryStatusRepository struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]Status
}

// NewInMemoryStatusRepository creates a new in-memory payout status repository.
func NewInMemoryStatusRepository() *InMemoryStatusRepository {
	return &InMemoryStatusRepository{
		statuses: make(map[uuid.UUID]Status),
	}
}

// GetStatuses retrieves every recorded payout status keyed by deal id.
func (r *InMemoryStatusRepository) GetStatuses(ctx context.Context) (map[uuid.UUID]Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[uuid.UUID]Status, len(r.statuses))
	for dealID, status := range r.statuses {
		statuses[dealID] = status
	}
	return statuses, nil
}

// SetStatus upserts the payout status for a deal.
func (r *InMemoryStatusRepository) SetStatus(ctx context.Context, dealID uuid.UUID, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statuses[dealID] = status
	return nil
}
