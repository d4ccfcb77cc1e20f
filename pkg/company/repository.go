package company

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company Company) (Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (Company, error)
	GetCompanyByName(ctx context.Context, name string) (Company, error)
	GetCompanyBySpocEmail(ctx context.Context, email string) (Company, error)
	GetCompanyByContactEmail(ctx context.Context, email string) (Company, error)
	GetCompanyByWebsite(ctx context.Context, website string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateCompany(ctx context.Context, company Company) (Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

// AssignmentSyncer keeps the account-manager assignment table in sync with
// a company's pam_id column. Implemented by the pam assignment repository in
// pkg/portaluser.
type AssignmentSyncer interface {
	Assign(ctx context.Context, pamID, companyID uuid.UUID) error
	Unassign(ctx context.Context, pamID, companyID uuid.UUID) error
}
