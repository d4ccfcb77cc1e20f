package payout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
)

type payoutFixture struct {
	service   *PayoutService
	deals     *deal.InMemoryDealRepository
	companies *company.InMemoryCompanyRepository
	statuses  *InMemoryStatusRepository
}

func newPayoutFixture() payoutFixture {
	deals := deal.NewInMemoryDealRepository()
	companies := company.NewInMemoryCompanyRepository()
	statuses := NewInMemoryStatusRepository()
	return payoutFixture{
		service:   NewPayoutService(deals, companies, statuses),
		deals:     deals,
		companies: companies,
		statuses:  statuses,
	}
}

func (f payoutFixture) addCompany(t *testing.T, name string, payoutPct float64) company.Company {
	t.Helper()
	created, err := f.companies.CreateCompany(context.Background(), company.Company{
		Name:             name,
		PayoutPercentage: payoutPct,
	})
	require.NoError(t, err)
	return created
}

func (f payoutFixture) addDeal(t *testing.T, companyID uuid.UUID, status deal.Status, revenue float64) deal.Deal {
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

func TestListPayoutsOnlyWonDeals(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0.20)

	won := f.addDeal(t, c.ID, deal.StatusWon, 100000)
	f.addDeal(t, c.ID, deal.StatusOpen, 50000)
	f.addDeal(t, c.ID, deal.StatusLost, 70000)

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, won.ID, payouts[0].DealID)
	assert.Equal(t, "acme", payouts[0].CompanyName)
	assert.Equal(t, 0.20, payouts[0].PayoutPercentage)
	assert.InDelta(t, 20000.0, payouts[0].Amount, 1e-9)
	assert.Equal(t, StatusPending, payouts[0].Status)
}

func TestListPayoutsDefaultPercentage(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0)
	f.addDeal(t, c.ID, deal.StatusWon, 100000)

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, company.DefaultPayoutPercentage, payouts[0].PayoutPercentage)
	assert.InDelta(t, 10000.0, payouts[0].Amount, 1e-9)
}

func TestListPayoutsUsesActualRevenue(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0.10)
	d := f.addDeal(t, c.ID, deal.StatusWon, 100000)

	actual := 80000.0
	d.RevenueActual = &actual
	_, err := f.deals.UpdateDeal(context.Background(), d)
	require.NoError(t, err)

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, 80000.0, payouts[0].Revenue)
	assert.InDelta(t, 8000.0, payouts[0].Amount, 1e-9)
}

func TestListPayoutsSkipsMissingCompany(t *testing.T) {
	f := newPayoutFixture()
	f.addDeal(t, uuid.New(), deal.StatusWon, 100000)

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payouts)
}

func TestSetStatus(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0.10)
	won := f.addDeal(t, c.ID, deal.StatusWon, 100000)

	require.NoError(t, f.service.SetStatus(context.Background(), won.ID, StatusApproved))

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, StatusApproved, payouts[0].Status)

	// Status can be flipped
	require.NoError(t, f.service.SetStatus(context.Background(), won.ID, StatusRejected))
	payouts, err = f.service.ListPayouts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, payouts[0].Status)
}

func TestSetStatusRejectsNonWonDeals(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0.10)
	open := f.addDeal(t, c.ID, deal.StatusOpen, 100000)

	err := f.service.SetStatus(context.Background(), open.ID, StatusApproved)
	assert.ErrorIs(t, err, ErrPayoutNotFound)

	err = f.service.SetStatus(context.Background(), uuid.New(), StatusApproved)
	assert.ErrorIs(t, err, ErrPayoutNotFound)
}

func TestSummarize(t *testing.T) {
	f := newPayoutFixture()
	c := f.addCompany(t, "acme", 0.10)
	f.addDeal(t, c.ID, deal.StatusWon, 100000)
	f.addDeal(t, c.ID, deal.StatusWon, 50000)

	payouts, err := f.service.ListPayouts(context.Background())
	require.NoError(t, err)

	summary := f.service.Summarize(payouts)
	assert.Equal(t, 2, summary.DealCount)
	assert.InDelta(t, 15000.0, summary.TotalPayout, 1e-9)

	assert.Equal(t, Summary{}, f.service.Summarize(nil))
}
