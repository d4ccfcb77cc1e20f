package payout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStatusRepository implements StatusRepository using PostgreSQL.
type PostgresStatusRepository struct {
	db *pgxpool.Pool
}

// NewPostgresStatusRepository creates a new PostgreSQL payout status repository.
func NewPostgresStatusRepository(db *pgxpool.Pool) (*PostgresStatusRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresStatusRepository{db: db}, nil
}

// GetStatuses retrieves every recorded payout status keyed by deal id.
func (r *PostgresStatusRepository) GetStatuses(ctx context.Context) (map[uuid.UUID]Status, error) {
	rows, err := r.db.Query(ctx, "SELECT deal_id, status FROM payout_status")
	if err != nil {
		return nil, fmt.Errorf("failed to list payout statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[uuid.UUID]Status)
	for rows.Next() {
		var dealID uuid.UUID
		var status Status
		if err := rows.Scan(&dealID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan payout status: %w", err)
		}
		statuses[dealID] = status
	}
	return statuses, rows.Err()
}

// SetStatus upserts the payout status for a deal.
func (r *PostgresStatusRepository) SetStatus(ctx context.Context, dealID uuid.UUID, status Status) error {
	query := `
		INSERT INTO payout_status (deal_id, status)
		VALUES ($1, $2)
		ON CONFLICT (deal_id) DO UPDATE SET status = $2, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, dealID, status); err != nil {
		return fmt.Errorf("failed to set payout status: %w", err)
	}
	return nil
}
