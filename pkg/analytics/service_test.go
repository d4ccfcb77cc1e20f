package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
	"github.com/tendant/partner-portal/pkg/portaluser"
)

type analyticsFixture struct {
	service   *AnalyticsService
	companies *company.InMemoryCompanyRepository
	deals     *deal.InMemoryDealRepository
	users     *portaluser.InMemoryUserRepository
}

func newAnalyticsFixture() analyticsFixture {
	companies := company.NewInMemoryCompanyRepository()
	deals := deal.NewInMemoryDealRepository()
	users := portaluser.NewInMemoryUserRepository()
	return analyticsFixture{
		service:   NewAnalyticsService(companies, deals, users),
		companies: companies,
		deals:     deals,
		users:     users,
	}
}

func (f analyticsFixture) addDeal(t *testing.T, companyID uuid.UUID, status deal.Status, revenue float64) deal.Deal {
	t.Helper()
	created, err := f.deals.CreateDeal(context.Background(), deal.Deal{
		CompanyID:       companyID,
		CustomerCompany: "Customer",
		RevenueARR:      revenue,
		Status:          status,
	})
	require.NoError(t, err)
	return created
}

func TestPartnerPerformance(t *testing.T) {
	f := newAnalyticsFixture()

	pam, err := f.users.CreateUser(context.Background(), portaluser.User{
		Username: "pam", Email: "pam@example.com",
	})
	require.NoError(t, err)

	c, err := f.companies.CreateCompany(context.Background(), company.Company{
		Name:  "acme",
		Tags:  []string{"cloud"},
		PamID: &pam.ID,
	})
	require.NoError(t, err)

	f.addDeal(t, c.ID, deal.StatusWon, 100000)
	f.addDeal(t, c.ID, deal.StatusOpen, 50000)

	won := f.addDeal(t, c.ID, deal.StatusWon, 30000)
	actual := 25000.0
	won.RevenueActual = &actual
	_, err = f.deals.UpdateDeal(context.Background(), won)
	require.NoError(t, err)

	rows, err := f.service.PartnerPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, c.ID, row.CompanyID)
	assert.Equal(t, "acme", row.CompanyName)
	assert.Equal(t, "pam", row.PamName)
	assert.Equal(t, 3, row.TotalDeals)
	assert.Equal(t, 2, row.WonDeals)
	// Realized revenue wins over registered ARR
	assert.InDelta(t, 175000.0, row.TotalRevenue, 1e-9)
	assert.Equal(t, []string{"cloud"}, row.Tags)
}

func TestPartnerPerformanceStalePam(t *testing.T) {
	f := newAnalyticsFixture()

	gone := uuid.New()
	_, err := f.companies.CreateCompany(context.Background(), company.Company{
		Name:  "acme",
		PamID: &gone,
	})
	require.NoError(t, err)

	rows, err := f.service.PartnerPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].PamName)
}

func TestDashboardStats(t *testing.T) {
	f := newAnalyticsFixture()

	c, err := f.companies.CreateCompany(context.Background(), company.Company{Name: "acme"})
	require.NoError(t, err)

	deals := []deal.Deal{
		f.addDeal(t, c.ID, deal.StatusWon, 100000),
		f.addDeal(t, c.ID, deal.StatusOpen, 50000),
		f.addDeal(t, c.ID, deal.StatusInProgress, 20000),
		f.addDeal(t, c.ID, deal.StatusLost, 10000),
	}

	stats := f.service.DashboardStats([]company.Company{c}, deals)
	assert.Equal(t, 1, stats.TotalCompanies)
	assert.Equal(t, 4, stats.TotalDeals)
	assert.Equal(t, 1, stats.WonDeals)
	assert.Equal(t, 2, stats.ActiveDeals)
	assert.InDelta(t, 180000.0, stats.TotalRevenue, 1e-9)
}

func TestDashboardStatsEmpty(t *testing.T) {
	f := newAnalyticsFixture()

	stats := f.service.DashboardStats(nil, nil)
	assert.Equal(t, DashboardStats{}, stats)
}
