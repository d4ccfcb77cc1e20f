package deal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dealColumns = `id, company_id, customer_company, customer_company_url, customer_spoc,
	customer_spoc_email, customer_spoc_phone, revenue_arr, revenue_actual, status,
	comments, created_at, updated_at`

// PostgresDealRepository implements DealRepository using PostgreSQL.
type PostgresDealRepository struct {
	db *pgxpool.Pool
}

// NewPostgresDealRepository creates a new PostgreSQL deal repository.
func NewPostgresDealRepository(db *pgxpool.Pool) (*PostgresDealRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresDealRepository{db: db}, nil
}

// CreateDeal inserts a new deal and returns the stored row.
func (r *PostgresDealRepository) CreateDeal(ctx context.Context, deal Deal) (Deal, error) {
	query := `
		INSERT INTO deals (company_id, customer_company, customer_company_url,
			customer_spoc, customer_spoc_email, customer_spoc_phone, revenue_arr,
			revenue_actual, status, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + dealColumns

	row := r.db.QueryRow(ctx, query,
		deal.CompanyID, deal.CustomerCompany, deal.CustomerCompanyURL,
		deal.CustomerSpoc, deal.CustomerSpocEmail, deal.CustomerSpocPhone,
		deal.RevenueARR, deal.RevenueActual, deal.Status, deal.Comments)

	created, err := scanDeal(row)
	if err != nil {
		return Deal{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return created, nil
}

// GetDeal retrieves a deal by id.
func (r *PostgresDealRepository) GetDeal(ctx context.Context, id uuid.UUID) (Deal, error) {
	query := "SELECT " + dealColumns + " FROM deals WHERE id = $1"

	deal, err := scanDeal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Deal{}, ErrDealNotFound
		}
		return Deal{}, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}

// ListDeals retrieves all deals ordered by creation time.
func (r *PostgresDealRepository) ListDeals(ctx context.Context) ([]Deal, error) {
	return r.list(ctx, "SELECT "+dealColumns+" FROM deals ORDER BY created_at")
}

// ListDealsByStatuses retrieves deals in any of the given statuses.
func (r *PostgresDealRepository) ListDealsByStatuses(ctx context.Context, statuses []Status) ([]Deal, error) {
	return r.list(ctx,
		"SELECT "+dealColumns+" FROM deals WHERE status = ANY($1) ORDER BY created_at",
		statusStrings(statuses))
}

func (r *PostgresDealRepository) list(ctx context.Context, query string, args ...interface{}) ([]Deal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

// UpdateDeal stores the full deal row and returns the stored state.
func (r *PostgresDealRepository) UpdateDeal(ctx context.Context, deal Deal) (Deal, error) {
	query := `
		UPDATE deals
		SET customer_company = $2, customer_company_url = $3, customer_spoc = $4,
			customer_spoc_email = $5, customer_spoc_phone = $6, revenue_arr = $7,
			revenue_actual = $8, status = $9, comments = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + dealColumns

	row := r.db.QueryRow(ctx, query,
		deal.ID, deal.CustomerCompany, deal.CustomerCompanyURL, deal.CustomerSpoc,
		deal.CustomerSpocEmail, deal.CustomerSpocPhone, deal.RevenueARR,
		deal.RevenueActual, deal.Status, deal.Comments)

	updated, err := scanDeal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Deal{}, ErrDealNotFound
		}
		return Deal{}, fmt.Errorf("failed to update deal: %w", err)
	}
	return updated, nil
}

// DeleteDeal removes a deal by id.
func (r *PostgresDealRepository) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM deals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDealNotFound
	}
	return nil
}

func scanDeal(row pgx.Row) (Deal, error) {
	var deal Deal
	err := row.Scan(
		&deal.ID, &deal.CompanyID, &deal.CustomerCompany, &deal.CustomerCompanyURL,
		&deal.CustomerSpoc, &deal.CustomerSpocEmail, &deal.CustomerSpocPhone,
		&deal.RevenueARR, &deal.RevenueActual, &deal.Status, &deal.Comments,
		&deal.CreatedAt, &deal.UpdatedAt)
	if err != nil {
		return Deal{}, err
	}
	return deal, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
