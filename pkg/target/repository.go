package target

import (
	"context"

	"github.com/google/uuid"
)

// TargetRepository defines the interface for target persistence.
type TargetRepository interface {
	CreateTarget(ctx context.Context, target Target) (Target, error)
	GetTarget(ctx context.Context, id uuid.UUID) (Target, error)
	ListTargets(ctx context.Context) ([]Target, error)
	UpdateTarget(ctx context.Context, target Target) (Target, error)
	DeleteTarget(ctx context.Context, id uuid.UUID) error
}
