package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
	"github.com/tendant/partner-portal/pkg/portaluser"
	"golang.org/x/exp/slog"
)

// CompanyDirectory lists companies for aggregation. Implemented by the
// company repository.
type CompanyDirectory interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
}

// DealSource lists deals for aggregation. Implemented by the deal
// repository.
type DealSource interface {
	ListDeals(ctx context.Context) ([]deal.Deal, error)
}

// UserDirectory resolves account-manager names. Implemented by the user
// repository.
type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (portaluser.User, error)
}

// AnalyticsService computes aggregates over companies and deals.
type AnalyticsService struct {
	companies CompanyDirectory
	deals     DealSource
	users     UserDirectory
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(companies CompanyDirectory, deals DealSource, users UserDirectory) *AnalyticsService {
	return &AnalyticsService{
		companies: companies,
		deals:     deals,
		users:     users,
	}
}

// PartnerPerformance returns one row per company with its deal totals.
func (s *AnalyticsService) PartnerPerformance(ctx context.Context) ([]PartnerPerformance, error) {
	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	deals, err := s.deals.ListDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	byCompany := make(map[uuid.UUID][]deal.Deal)
	for _, d := range deals {
		byCompany[d.CompanyID] = append(byCompany[d.CompanyID], d)
	}

	rows := make([]PartnerPerformance, 0, len(companies))
	for _, c := range companies {
		row := PartnerPerformance{
			CompanyID:   c.ID,
			CompanyName: c.Name,
			Tags:        c.Tags,
		}
		if c.PamID != nil {
			pam, err := s.users.GetUser(ctx, *c.PamID)
			if err != nil {
				// Stale pam_id must not break the report
				slog.Warn("Failed to resolve account manager", "company", c.ID, "pam", *c.PamID, "err", err)
			} else {
				row.PamName = pam.Username
			}
		}
		for _, d := range byCompany[c.ID] {
			row.TotalDeals++
			row.TotalRevenue += d.Revenue()
			if d.Status == deal.StatusWon {
				row.WonDeals++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DashboardStats totals the given companies and deals. Callers filter both
// slices to the user's scope before calling.
func (s *AnalyticsService) DashboardStats(companies []company.Company, deals []deal.Deal) DashboardStats {
	stats := DashboardStats{
		TotalCompanies: len(companies),
		TotalDeals:     len(deals),
	}
	for _, d := range deals {
		stats.TotalRevenue += d.Revenue()
		switch d.Status {
		case deal.StatusWon:
			stats.WonDeals++
		case deal.StatusOpen, deal.StatusInProgress:
			stats.ActiveDeals++
		}
	}
	return stats
}

// ListCompanies exposes the underlying company list for scope filtering.
func (s *AnalyticsService) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return s.companies.ListCompanies(ctx)
}

// ListDeals exposes the underlying deal list for scope filtering.
func (s *AnalyticsService) ListDeals(ctx context.Context) ([]deal.Deal, error) {
	return s.deals.ListDeals(ctx)
}
