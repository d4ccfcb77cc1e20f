package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `id, name, company_type, website, contact_email, contact_phone,
	logo_url, spoc_name, spoc_email, spoc_phone, country, serving_regions,
	partner_stage, published, tags, pam_id, payout_percentage, created_at`

// PostgresCompanyRepository implements CompanyRepository using PostgreSQL.
type PostgresCompanyRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository.
func NewPostgresCompanyRepository(db *pgxpool.Pool) (*PostgresCompanyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresCompanyRepository{db: db}, nil
}

// CreateCompany inserts a new company and returns the stored row.
func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, company Company) (Company, error) {
	query := `
		INSERT INTO companies (name, company_type, website, contact_email, contact_phone,
			logo_url, spoc_name, spoc_email, spoc_phone, country, serving_regions,
			partner_stage, published, tags, pam_id, payout_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + companyColumns

	row := r.db.QueryRow(ctx, query,
		company.Name, company.CompanyType, company.Website, company.ContactEmail,
		company.ContactPhone, company.LogoURL, company.SpocName, company.SpocEmail,
		company.SpocPhone, company.Country, company.ServingRegions, company.PartnerStage,
		company.Published, joinTags(company.Tags), company.PamID, company.PayoutPercentage)

	created, err := scanCompany(row)
	if err != nil {
		return Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetCompany retrieves a company by id.
func (r *PostgresCompanyRepository) GetCompany(ctx context.Context, id uuid.UUID) (Company, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetCompanyByName retrieves a company by its unique name.
func (r *PostgresCompanyRepository) GetCompanyByName(ctx context.Context, name string) (Company, error) {
	return r.getBy(ctx, "name = $1", name)
}

// GetCompanyBySpocEmail retrieves a company by its SPOC email.
func (r *PostgresCompanyRepository) GetCompanyBySpocEmail(ctx context.Context, email string) (Company, error) {
	return r.getBy(ctx, "spoc_email = $1", email)
}

// GetCompanyByContactEmail retrieves a company by its contact email.
func (r *PostgresCompanyRepository) GetCompanyByContactEmail(ctx context.Context, email string) (Company, error) {
	return r.getBy(ctx, "contact_email = $1", email)
}

// GetCompanyByWebsite retrieves a company by its website.
func (r *PostgresCompanyRepository) GetCompanyByWebsite(ctx context.Context, website string) (Company, error) {
	return r.getBy(ctx, "website = $1", website)
}

func (r *PostgresCompanyRepository) getBy(ctx context.Context, where string, arg interface{}) (Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE " + where

	company, err := scanCompany(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies retrieves all companies ordered by creation time.
func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context) ([]Company, error) {
	query := "SELECT " + companyColumns + " FROM companies ORDER BY created_at"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// ListCompanyIDs returns the ids of all companies. Satisfies
// rbac.CompanyLister for Portal Administrator scope resolution.
func (r *PostgresCompanyRepository) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM companies ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list company ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateCompany stores the full company row and returns the stored state.
func (r *PostgresCompanyRepository) UpdateCompany(ctx context.Context, company Company) (Company, error) {
	query := `
		UPDATE companies
		SET name = $2, company_type = $3, website = $4, contact_email = $5,
			contact_phone = $6, logo_url = $7, spoc_name = $8, spoc_email = $9,
			spoc_phone = $10, country = $11, serving_regions = $12, partner_stage = $13,
			published = $14, tags = $15, pam_id = $16, payout_percentage = $17
		WHERE id = $1
		RETURNING ` + companyColumns

	row := r.db.QueryRow(ctx, query,
		company.ID, company.Name, company.CompanyType, company.Website,
		company.ContactEmail, company.ContactPhone, company.LogoURL, company.SpocName,
		company.SpocEmail, company.SpocPhone, company.Country, company.ServingRegions,
		company.PartnerStage, company.Published, joinTags(company.Tags), company.PamID,
		company.PayoutPercentage)

	updated, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, fmt.Errorf("failed to update company: %w", err)
	}
	return updated, nil
}

// DeleteCompany removes a company by id.
func (r *PostgresCompanyRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (Company, error) {
	var company Company
	var tags string
	err := row.Scan(
		&company.ID, &company.Name, &company.CompanyType, &company.Website,
		&company.ContactEmail, &company.ContactPhone, &company.LogoURL,
		&company.SpocName, &company.SpocEmail, &company.SpocPhone, &company.Country,
		&company.ServingRegions, &company.PartnerStage, &company.Published, &tags,
		&company.PamID, &company.PayoutPercentage, &company.CreatedAt)
	if err != nil {
		return Company{}, err
	}
	company.Tags = splitTags(tags)
	return company, nil
}
