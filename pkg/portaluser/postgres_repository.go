package portaluser

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/partner-portal/pkg/rbac"
)

const userColumns = `id, username, email, role, company_id, password_hash, created_at`

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository.
func NewPostgresUserRepository(db *pgxpool.Pool) (*PostgresUserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresUserRepository{db: db}, nil
}

// CreateUser inserts a new user and returns the stored row.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	query := `
		INSERT INTO users (username, email, role, company_id, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.Username, user.Email, string(user.Role), user.CompanyID, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetUser retrieves a user by id.
func (r *PostgresUserRepository) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetUserByEmail retrieves a user by email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *PostgresUserRepository) getBy(ctx context.Context, where string, arg interface{}) (User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + where

	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users ordered by creation time.
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at")
}

// ListUsersByRole retrieves users holding the given role.
func (r *PostgresUserRepository) ListUsersByRole(ctx context.Context, role rbac.Role) ([]User, error) {
	return r.list(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = $1 ORDER BY created_at",
		string(role))
}

func (r *PostgresUserRepository) list(ctx context.Context, query string, args ...interface{}) ([]User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser stores the full user row and returns the stored state.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user User) (User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, role = $4, company_id = $5, password_hash = $6
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, string(user.Role), user.CompanyID, user.PasswordHash)

	updated, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes a user by id.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &role,
		&user.CompanyID, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	user.Role = rbac.ParseRole(role)
	return user, nil
}

// PostgresPamAssignmentRepository implements PamAssignmentRepository using
// PostgreSQL.
type PostgresPamAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPamAssignmentRepository creates a new PostgreSQL assignment
// repository.
func NewPostgresPamAssignmentRepository(db *pgxpool.Pool) (*PostgresPamAssignmentRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresPamAssignmentRepository{db: db}, nil
}

// Assign links pamID to companyID. Assigning an existing pair is a no-op.
func (r *PostgresPamAssignmentRepository) Assign(ctx context.Context, pamID, companyID uuid.UUID) error {
	query := `
		INSERT INTO pam_company_assignments (pam_id, company_id)
		VALUES ($1, $2)
		ON CONFLICT (pam_id, company_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, pamID, companyID); err != nil {
		return fmt.Errorf("failed to create pam assignment: %w", err)
	}
	return nil
}

// Unassign removes the link between pamID and companyID. Removing a missing
// pair is a no-op so company PAM sync stays idempotent.
func (r *PostgresPamAssignmentRepository) Unassign(ctx context.Context, pamID, companyID uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		"DELETE FROM pam_company_assignments WHERE pam_id = $1 AND company_id = $2",
		pamID, companyID); err != nil {
		return fmt.Errorf("failed to delete pam assignment: %w", err)
	}
	return nil
}

// UnassignAll removes every assignment held by pamID.
func (r *PostgresPamAssignmentRepository) UnassignAll(ctx context.Context, pamID uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		"DELETE FROM pam_company_assignments WHERE pam_id = $1", pamID); err != nil {
		return fmt.Errorf("failed to clear pam assignments: %w", err)
	}
	return nil
}

// ListAssignedCompanyIDs returns the companies assigned to pamID.
func (r *PostgresPamAssignmentRepository) ListAssignedCompanyIDs(ctx context.Context, pamID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		"SELECT company_id FROM pam_company_assignments WHERE pam_id = $1 ORDER BY created_at",
		pamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pam assignments: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pam assignment: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
