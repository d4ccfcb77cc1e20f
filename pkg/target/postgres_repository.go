package target

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const targetColumns = `id, target_type, target_entity_id, target_metric, target_value,
	target_period, description, created_at`

// PostgresTargetRepository implements TargetRepository using PostgreSQL.
type PostgresTargetRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTargetRepository creates a new PostgreSQL target repository.
func NewPostgresTargetRepository(db *pgxpool.Pool) (*PostgresTargetRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresTargetRepository{db: db}, nil
}

// CreateTarget inserts a new target and returns the stored row.
func (r *PostgresTargetRepository) CreateTarget(ctx context.Context, target Target) (Target, error) {
	query := `
		INSERT INTO targets (target_type, target_entity_id, target_metric,
			target_value, target_period, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + targetColumns

	row := r.db.QueryRow(ctx, query,
		target.TargetType, target.TargetEntityID, target.TargetMetric,
		target.TargetValue, target.TargetPeriod, target.Description)

	created, err := scanTarget(row)
	if err != nil {
		return Target{}, fmt.Errorf("failed to create target: %w", err)
	}
	return created, nil
}

// GetTarget retrieves a target by id.
func (r *PostgresTargetRepository) GetTarget(ctx context.Context, id uuid.UUID) (Target, error) {
	query := "SELECT " + targetColumns + " FROM targets WHERE id = $1"

	target, err := scanTarget(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Target{}, ErrTargetNotFound
		}
		return Target{}, fmt.Errorf("failed to get target: %w", err)
	}
	return target, nil
}

// ListTargets retrieves all targets ordered by creation time.
func (r *PostgresTargetRepository) ListTargets(ctx context.Context) ([]Target, error) {
	rows, err := r.db.Query(ctx, "SELECT "+targetColumns+" FROM targets ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []Target
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

// UpdateTarget stores the mutable fields of a target.
func (r *PostgresTargetRepository) UpdateTarget(ctx context.Context, target Target) (Target, error) {
	query := `
		UPDATE targets
		SET target_value = $2, description = $3
		WHERE id = $1
		RETURNING ` + targetColumns

	updated, err := scanTarget(r.db.QueryRow(ctx, query, target.ID, target.TargetValue, target.Description))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Target{}, ErrTargetNotFound
		}
		return Target{}, fmt.Errorf("failed to update target: %w", err)
	}
	return updated, nil
}

// DeleteTarget removes a target by id.
func (r *PostgresTargetRepository) DeleteTarget(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM targets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTargetNotFound
	}
	return nil
}

func scanTarget(row pgx.Row) (Target, error) {
	var target Target
	err := row.Scan(
		&target.ID, &target.TargetType, &target.TargetEntityID, &target.TargetMetric,
		&target.TargetValue, &target.TargetPeriod, &target.Description, &target.CreatedAt)
	if err != nil {
		return Target{}, err
	}
	return target, nil
}
