package payout

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
)

// StatusRepository persists the approval state of payouts, keyed by deal id.
// Deals without a row are Pending.
type StatusRepository interface {
	GetStatuses(ctx context.Context) (map[uuid.UUID]Status, error)
	SetStatus(ctx context.Context, dealID uuid.UUID, status Status) error
}

// DealSource lists deals for payout derivation. Implemented by the deal
// repository.
type DealSource interface {
	GetDeal(ctx context.Context, id uuid.UUID) (deal.Deal, error)
	ListDealsByStatuses(ctx context.Context, statuses []deal.Status) ([]deal.Deal, error)
}

// CompanyDirectory resolves companies for payout rows. Implemented by the
// company repository.
type CompanyDirectory interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
}
