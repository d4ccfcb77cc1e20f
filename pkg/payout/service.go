package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
	"golang.org/x/exp/slog"
)

// PayoutService derives commission rows from won deals.
type PayoutService struct {
	deals     DealSource
	companies CompanyDirectory
	statuses  StatusRepository
}

// NewPayoutService creates a new payout service.
func NewPayoutService(deals DealSource, companies CompanyDirectory, statuses StatusRepository) *PayoutService {
	return &PayoutService{
		deals:     deals,
		companies: companies,
		statuses:  statuses,
	}
}

// ListPayouts returns one payout row per won deal, with the persisted status
// or Pending when none is recorded.
func (s *PayoutService) ListPayouts(ctx context.Context) ([]Payout, error) {
	won, err := s.deals.ListDealsByStatuses(ctx, []deal.Status{deal.StatusWon})
	if err != nil {
		return nil, fmt.Errorf("failed to list won deals: %w", err)
	}

	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	byID := make(map[uuid.UUID]company.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	statuses, err := s.statuses.GetStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payout statuses: %w", err)
	}

	payouts := make([]Payout, 0, len(won))
	for _, d := range won {
		c, ok := byID[d.CompanyID]
		if !ok {
			// Won deals can outlive a deleted company
			slog.Warn("Skipping payout for missing company", "deal", d.ID, "company", d.CompanyID)
			continue
		}

		percentage := c.PayoutPercentage
		if percentage == 0 {
			percentage = company.DefaultPayoutPercentage
		}

		status, ok := statuses[d.ID]
		if !ok {
			status = StatusPending
		}

		revenue := d.Revenue()
		payouts = append(payouts, Payout{
			DealID:           d.ID,
			CompanyID:        c.ID,
			CompanyName:      c.Name,
			CustomerCompany:  d.CustomerCompany,
			Revenue:          revenue,
			PayoutPercentage: percentage,
			Amount:           revenue * percentage,
			Status:           status,
			DealClosedAt:     d.UpdatedAt,
		})
	}
	return payouts, nil
}

// Summarize totals a set of payout rows.
func (s *PayoutService) Summarize(payouts []Payout) Summary {
	summary := Summary{DealCount: len(payouts)}
	for _, p := range payouts {
		summary.TotalPayout += p.Amount
	}
	return summary
}

// SetStatus records the approval state for the payout of a won deal.
func (s *PayoutService) SetStatus(ctx context.Context, dealID uuid.UUID, status Status) error {
	d, err := s.deals.GetDeal(ctx, dealID)
	if err != nil {
		if errors.Is(err, deal.ErrDealNotFound) {
			return ErrPayoutNotFound
		}
		return fmt.Errorf("failed to get deal: %w", err)
	}
	if d.Status != deal.StatusWon {
		return ErrPayoutNotFound
	}

	if err := s.statuses.SetStatus(ctx, dealID, status); err != nil {
		return err
	}
	slog.Info("Recorded payout status", "deal", dealID, "status", status)
	return nil
}
