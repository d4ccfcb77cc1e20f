package company

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSyncer records assignment sync calls
type fakeSyncer struct {
	assigned   map[uuid.UUID][]uuid.UUID
	unassigned map[uuid.UUID][]uuid.UUID
}

func newFakeSyncer() *fakeSyncer {
	return &fakeSyncer{
		assigned:   make(map[uuid.UUID][]uuid.UUID),
		unassigned: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeSyncer) Assign(ctx context.Context, pamID, companyID uuid.UUID) error {
	f.assigned[pamID] = append(f.assigned[pamID], companyID)
	return nil
}

func (f *fakeSyncer) Unassign(ctx context.Context, pamID, companyID uuid.UUID) error {
	f.unassigned[pamID] = append(f.unassigned[pamID], companyID)
	return nil
}

func newTestService() (*CompanyService, *fakeSyncer) {
	syncer := newFakeSyncer()
	return NewCompanyService(NewInMemoryCompanyRepository(), syncer), syncer
}

func validCreateRequest() CreateCompanyRequest {
	return CreateCompanyRequest{
		Name:           "Acme Partners",
		CompanyType:    "Reseller",
		Website:        "https://acme.example.com",
		ContactEmail:   "contact@acme.example.com",
		SpocName:       "Jane Doe",
		SpocEmail:      "jane@acme.example.com",
		Country:        "US",
		ServingRegions: "NA,EU",
		PartnerStage:   "Registered",
	}
}

func TestCreateCompany(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCompany(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Acme Partners", created.Name)
	assert.Equal(t, DefaultPayoutPercentage, created.PayoutPercentage)

	got, err := service.GetCompany(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateCompanyMissingFields(t *testing.T) {
	service, _ := newTestService()

	req := validCreateRequest()
	req.Name = ""
	req.Country = ""

	_, err := service.CreateCompany(context.Background(), req)
	var missing ErrMissingFields
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Fields, "name")
	assert.Contains(t, missing.Fields, "country")
}

func TestCreateCompanyDuplicates(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateCompany(context.Background(), validCreateRequest())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*CreateCompanyRequest)
		field  string
	}{
		{"name", func(r *CreateCompanyRequest) {
			r.ContactEmail = "other@example.com"
			r.SpocEmail = "other-spoc@example.com"
			r.Website = "https://other.example.com"
		}, "name"},
		{"spoc email", func(r *CreateCompanyRequest) {
			r.Name = "Other Partners"
			r.ContactEmail = "other@example.com"
			r.Website = "https://other.example.com"
		}, "SPOC email"},
		{"contact email", func(r *CreateCompanyRequest) {
			r.Name = "Other Partners"
			r.SpocEmail = "other-spoc@example.com"
			r.Website = "https://other.example.com"
		}, "email"},
		{"website", func(r *CreateCompanyRequest) {
			r.Name = "Other Partners"
			r.ContactEmail = "other@example.com"
			r.SpocEmail = "other-spoc@example.com"
		}, "website"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := service.CreateCompany(context.Background(), req)
			var dup ErrDuplicateCompany
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tc.field, dup.Field)
		})
	}
}

func TestCreateCompanyCustomPayoutPercentage(t *testing.T) {
	service, _ := newTestService()

	pct := 0.15
	req := validCreateRequest()
	req.PayoutPercentage = &pct

	created, err := service.CreateCompany(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.15, created.PayoutPercentage)
}

func TestCreateCompanySyncsPamAssignment(t *testing.T) {
	service, syncer := newTestService()

	pamID := uuid.New()
	req := validCreateRequest()
	req.PamID = &pamID

	created, err := service.CreateCompany(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created.ID}, syncer.assigned[pamID])
}

func TestUpdateCompany(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCompany(context.Background(), validCreateRequest())
	require.NoError(t, err)

	name := "Acme Renamed"
	published := true
	updated, err := service.UpdateCompany(context.Background(), created.ID, UpdateCompanyRequest{
		Name:      &name,
		Published: &published,
		Tags:      []string{"cloud", "security"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", updated.Name)
	assert.True(t, updated.Published)
	assert.Equal(t, []string{"cloud", "security"}, updated.Tags)
	// Untouched fields survive
	assert.Equal(t, created.ContactEmail, updated.ContactEmail)
}

func TestUpdateCompanyDuplicateName(t *testing.T) {
	service, _ := newTestService()

	first, err := service.CreateCompany(context.Background(), validCreateRequest())
	require.NoError(t, err)

	other := validCreateRequest()
	other.Name = "Other Partners"
	other.ContactEmail = "other@example.com"
	other.SpocEmail = "other-spoc@example.com"
	other.Website = "https://other.example.com"
	_, err = service.CreateCompany(context.Background(), other)
	require.NoError(t, err)

	name := "Other Partners"
	_, err = service.UpdateCompany(context.Background(), first.ID, UpdateCompanyRequest{Name: &name})
	var dup ErrDuplicateCompany
	assert.ErrorAs(t, err, &dup)

	// Re-submitting its own name is not a duplicate
	own := first.Name
	_, err = service.UpdateCompany(context.Background(), first.ID, UpdateCompanyRequest{Name: &own})
	assert.NoError(t, err)
}

func TestUpdateCompanyReplacesPam(t *testing.T) {
	service, syncer := newTestService()

	oldPam := uuid.New()
	req := validCreateRequest()
	req.PamID = &oldPam
	created, err := service.CreateCompany(context.Background(), req)
	require.NoError(t, err)

	newPam := uuid.New()
	updated, err := service.UpdateCompany(context.Background(), created.ID, UpdateCompanyRequest{PamID: &newPam})
	require.NoError(t, err)
	require.NotNil(t, updated.PamID)
	assert.Equal(t, newPam, *updated.PamID)
	assert.Equal(t, []uuid.UUID{created.ID}, syncer.unassigned[oldPam])
	assert.Equal(t, []uuid.UUID{created.ID}, syncer.assigned[newPam])
}

func TestUpdateCompanyClearPam(t *testing.T) {
	service, syncer := newTestService()

	pamID := uuid.New()
	req := validCreateRequest()
	req.PamID = &pamID
	created, err := service.CreateCompany(context.Background(), req)
	require.NoError(t, err)

	updated, err := service.UpdateCompany(context.Background(), created.ID, UpdateCompanyRequest{ClearPam: true})
	require.NoError(t, err)
	assert.Nil(t, updated.PamID)
	assert.Equal(t, []uuid.UUID{created.ID}, syncer.unassigned[pamID])
}

func TestDeleteCompany(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCompany(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteCompany(context.Background(), created.ID))

	_, err = service.GetCompany(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	assert.ErrorIs(t, service.DeleteCompany(context.Background(), uuid.New()), ErrCompanyNotFound)
}
