package company

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCompanyRepository implements CompanyRepository using in-memory
// storage. Intended for tests and demos.
type InMemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]Company
}

// NewInMemoryCompanyRepository creates a new in-memory company repository.
func NewInMemoryCompanyRepository() *InMemoryCompanyRepository {
	return &InMemoryCompanyRepository{
		companies: make(map[uuid.UUID]Company),
	}
}

// CreateCompany inserts a new company.
func (r *InMemoryCompanyRepository) CreateCompany(ctx context.Context, company Company) (Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	company.ID = uuid.New()
	company.CreatedAt = time.Now().UTC()
	if company.Tags == nil {
		company.Tags = []string{}
	}
	r.companies[company.ID] = company
	return company, nil
}

// GetCompany retrieves a company by id.
func (r *InMemoryCompanyRepository) GetCompany(ctx context.Context, id uuid.UUID) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, ok := r.companies[id]
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	return company, nil
}

// GetCompanyByName retrieves a company by name.
func (r *InMemoryCompanyRepository) GetCompanyByName(ctx context.Context, name string) (Company, error) {
	return r.findBy(func(c Company) bool { return c.Name == name })
}

// GetCompanyBySpocEmail retrieves a company by SPOC email.
func (r *InMemoryCompanyRepository) GetCompanyBySpocEmail(ctx context.Context, email string) (Company, error) {
	return r.findBy(func(c Company) bool { return c.SpocEmail == email })
}

// GetCompanyByContactEmail retrieves a company by contact email.
func (r *InMemoryCompanyRepository) GetCompanyByContactEmail(ctx context.Context, email string) (Company, error) {
	return r.findBy(func(c Company) bool { return c.ContactEmail == email })
}

// GetCompanyByWebsite retrieves a company by website.
func (r *InMemoryCompanyRepository) GetCompanyByWebsite(ctx context.Context, website string) (Company, error) {
	return r.findBy(func(c Company) bool { return c.Website == website })
}

func (r *InMemoryCompanyRepository) findBy(match func(Company) bool) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, company := range r.companies {
		if match(company) {
			return company, nil
		}
	}
	return Company{}, ErrCompanyNotFound
}

// ListCompanies retrieves all companies ordered by creation time.
func (r *InMemoryCompanyRepository) ListCompanies(ctx context.Context) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	companies := make([]Company, 0, len(r.companies))
	for _, company := range r.companies {
		companies = append(companies, company)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].CreatedAt.Before(companies[j].CreatedAt)
	})
	return companies, nil
}

// ListCompanyIDs returns the ids of all companies.
func (r *InMemoryCompanyRepository) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	companies, err := r.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(companies))
	for i, company := range companies {
		ids[i] = company.ID
	}
	return ids, nil
}

// UpdateCompany stores the full company row.
func (r *InMemoryCompanyRepository) UpdateCompany(ctx context.Context, company Company) (Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.companies[company.ID]
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	company.CreatedAt = existing.CreatedAt
	r.companies[company.ID] = company
	return company, nil
}

// DeleteCompany removes a company by id.
func (r *InMemoryCompanyRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(r.companies, id)
	return nil
}
