package target

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryTargetRepository implements TargetRepository using in-memory
// storage.
type InMemoryTargetRepository struct {
	mu      sync.RWMutex
	targets map[uuid.UUID]Target
}

// NewInMemoryTargetRepository creates a new in-memory target repository.
func NewInMemoryTargetRepository() *InMemoryTargetRepository {
	return &InMemoryTargetRepository{
		targets: make(map[uuid.UUID]Target),
	}
}

// CreateTarget inserts a new target.
func (r *InMemoryTargetRepository) CreateTarget(ctx context.Context, target Target) (Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target.ID = uuid.New()
	target.CreatedAt = time.Now().UTC()
	r.targets[target.ID] = target
	return target, nil
}

// GetTarget retrieves a target by id.
func (r *InMemoryTargetRepository) GetTarget(ctx context.Context, id uuid.UUID) (Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.targets[id]
	if !ok {
		return Target{}, ErrTargetNotFound
	}
	return target, nil
}

// ListTargets retrieves all targets ordered by creation time.
func (r *InMemoryTargetRepository) ListTargets(ctx context.Context) ([]Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]Target, 0, len(r.targets))
	for _, target := range r.targets {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].CreatedAt.Before(targets[j].CreatedAt)
	})
	return targets, nil
}

// UpdateTarget stores the mutable fields of a target.
func (r *InMemoryTargetRepository) UpdateTarget(ctx context.Context, target Target) (Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.targets[target.ID]
	if !ok {
		return Target{}, ErrTargetNotFound
	}
	existing.TargetValue = target.TargetValue
	existing.Description = target.Description
	r.targets[target.ID] = existing
	return existing, nil
}

// DeleteTarget removes a target by id.
func (r *InMemoryTargetRepository) DeleteTarget(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.targets[id]; !ok {
		return ErrTargetNotFound
	}
	delete(r.targets, id)
	return nil
}
