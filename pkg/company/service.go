package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// CompanyService provides methods for managing partner companies.
type CompanyService struct {
	repo        CompanyRepository
	assignments AssignmentSyncer
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo CompanyRepository, assignments AssignmentSyncer) *CompanyService {
	return &CompanyService{
		repo:        repo,
		assignments: assignments,
	}
}

// ListCompanyIDs returns the ids of all companies. Satisfies
// rbac.CompanyLister so the service itself can back the authorization
// checker.
func (s *CompanyService) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListCompanyIDs(ctx)
}

// GetCompany retrieves a company by id.
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (Company, error) {
	return s.repo.GetCompany(ctx, id)
}

// ListCompanies retrieves all companies.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]Company, error) {
	return s.repo.ListCompanies(ctx)
}

// CreateCompany validates and creates a new company. When a PAM is assigned
// at creation time, the assignment table is synced as well.
func (s *CompanyService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (Company, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"company_type", req.CompanyType},
		{"contact_email", req.ContactEmail},
		{"spoc_name", req.SpocName},
		{"spoc_email", req.SpocEmail},
		{"country", req.Country},
		{"serving_regions", req.ServingRegions},
		{"partner_stage", req.PartnerStage},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Company{}, ErrMissingFields{Fields: missing}
	}

	if err := s.checkDuplicate(ctx, "name", req.Name, s.repo.GetCompanyByName, uuid.Nil); err != nil {
		return Company{}, err
	}
	if err := s.checkDuplicate(ctx, "SPOC email", req.SpocEmail, s.repo.GetCompanyBySpocEmail, uuid.Nil); err != nil {
		return Company{}, err
	}
	if err := s.checkDuplicate(ctx, "email", req.ContactEmail, s.repo.GetCompanyByContactEmail, uuid.Nil); err != nil {
		return Company{}, err
	}
	if req.Website != "" {
		if err := s.checkDuplicate(ctx, "website", req.Website, s.repo.GetCompanyByWebsite, uuid.Nil); err != nil {
			return Company{}, err
		}
	}

	payout := DefaultPayoutPercentage
	if req.PayoutPercentage != nil {
		payout = *req.PayoutPercentage
	}

	company, err := s.repo.CreateCompany(ctx, Company{
		Name:             req.Name,
		CompanyType:      req.CompanyType,
		Website:          req.Website,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		LogoURL:          req.LogoURL,
		SpocName:         req.SpocName,
		SpocEmail:        req.SpocEmail,
		SpocPhone:        req.SpocPhone,
		Country:          req.Country,
		ServingRegions:   req.ServingRegions,
		PartnerStage:     req.PartnerStage,
		Published:        req.Published,
		Tags:             req.Tags,
		PamID:            req.PamID,
		PayoutPercentage: payout,
	})
	if err != nil {
		return Company{}, err
	}

	if company.PamID != nil {
		if err := s.assignments.Assign(ctx, *company.PamID, company.ID); err != nil {
			slog.Error("Failed syncing PAM assignment on create", "company", company.ID, "pam", *company.PamID, "err", err)
			return Company{}, fmt.Errorf("failed to sync pam assignment: %w", err)
		}
	}

	return company, nil
}

// UpdateCompany applies the non-nil fields of req to the company, enforcing
// the same uniqueness rules as create and keeping the assignment table in
// sync when the PAM changes.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return Company{}, err
	}

	if req.Name != nil && *req.Name != company.Name {
		if err := s.checkDuplicate(ctx, "name", *req.Name, s.repo.GetCompanyByName, id); err != nil {
			return Company{}, err
		}
		company.Name = *req.Name
	}
	if req.SpocEmail != nil && *req.SpocEmail != company.SpocEmail {
		if err := s.checkDuplicate(ctx, "SPOC email", *req.SpocEmail, s.repo.GetCompanyBySpocEmail, id); err != nil {
			return Company{}, err
		}
		company.SpocEmail = *req.SpocEmail
	}
	if req.ContactEmail != nil && *req.ContactEmail != company.ContactEmail {
		if err := s.checkDuplicate(ctx, "email", *req.ContactEmail, s.repo.GetCompanyByContactEmail, id); err != nil {
			return Company{}, err
		}
		company.ContactEmail = *req.ContactEmail
	}
	if req.Website != nil && *req.Website != company.Website {
		if err := s.checkDuplicate(ctx, "website", *req.Website, s.repo.GetCompanyByWebsite, id); err != nil {
			return Company{}, err
		}
		company.Website = *req.Website
	}

	if req.CompanyType != nil {
		company.CompanyType = *req.CompanyType
	}
	if req.ContactPhone != nil {
		company.ContactPhone = *req.ContactPhone
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	if req.SpocName != nil {
		company.SpocName = *req.SpocName
	}
	if req.SpocPhone != nil {
		company.SpocPhone = *req.SpocPhone
	}
	if req.Country != nil {
		company.Country = *req.Country
	}
	if req.ServingRegions != nil {
		company.ServingRegions = *req.ServingRegions
	}
	if req.PartnerStage != nil {
		company.PartnerStage = *req.PartnerStage
	}
	if req.Published != nil {
		company.Published = *req.Published
	}
	if req.Tags != nil {
		company.Tags = req.Tags
	}
	if req.PayoutPercentage != nil {
		company.PayoutPercentage = *req.PayoutPercentage
	}

	if req.PamID != nil || req.ClearPam {
		oldPam := company.PamID
		var newPam *uuid.UUID
		if !req.ClearPam {
			newPam = req.PamID
		}

		if !samePam(oldPam, newPam) {
			if oldPam != nil {
				if err := s.assignments.Unassign(ctx, *oldPam, company.ID); err != nil {
					return Company{}, fmt.Errorf("failed to remove pam assignment: %w", err)
				}
			}
			if newPam != nil {
				if err := s.assignments.Assign(ctx, *newPam, company.ID); err != nil {
					return Company{}, fmt.Errorf("failed to sync pam assignment: %w", err)
				}
			}
			company.PamID = newPam
		}
	}

	return s.repo.UpdateCompany(ctx, company)
}

// DeleteCompany removes a company.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCompany(ctx, id)
}

func (s *CompanyService) checkDuplicate(ctx context.Context, field, value string,
	get func(context.Context, string) (Company, error), excludeID uuid.UUID) error {
	existing, err := get(ctx, value)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check duplicate %s: %w", field, err)
	}
	if existing.ID == excludeID {
		return nil
	}
	return ErrDuplicateCompany{Field: field, Value: value}
}

func samePam(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
