package portaluser

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListUsersByRole(ctx context.Context, role rbac.Role) ([]User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// PamAssignmentRepository defines the interface for the many-to-many
// assignment of account managers to companies.
type PamAssignmentRepository interface {
	Assign(ctx context.Context, pamID, companyID uuid.UUID) error
	Unassign(ctx context.Context, pamID, companyID uuid.UUID) error
	UnassignAll(ctx context.Context, pamID uuid.UUID) error
	ListAssignedCompanyIDs(ctx context.Context, pamID uuid.UUID) ([]uuid.UUID, error)
}
