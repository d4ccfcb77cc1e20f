package deal

import (
	"context"

	"github.com/google/uuid"
)

// DealRepository defines the interface for deal persistence.
type DealRepository interface {
	CreateDeal(ctx context.Context, deal Deal) (Deal, error)
	GetDeal(ctx context.Context, id uuid.UUID) (Deal, error)
	ListDeals(ctx context.Context) ([]Deal, error)
	ListDealsByStatuses(ctx context.Context, statuses []Status) ([]Deal, error)
	UpdateDeal(ctx context.Context, deal Deal) (Deal, error)
	DeleteDeal(ctx context.Context, id uuid.UUID) error
}
