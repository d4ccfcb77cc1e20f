package portaluser

import (
	"time"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// User represents a portal user account. The password hash never leaves the
// package through JSON.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         rbac.Role  `json:"role"`
	CompanyID    *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	PasswordHash []byte     `json:"-"`
}

// PamAssignment links an account manager to a company.
type PamAssignment struct {
	PamID     uuid.UUID `json:"pam_id"`
	CompanyID uuid.UUID `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentView is the list representation of a PAM with their companies.
type AssignmentView struct {
	PamID     uuid.UUID        `json:"pam_id"`
	PamName   string           `json:"pam_name"`
	PamEmail  string           `json:"pam_email"`
	Companies []CompanySummary `json:"companies"`
	CreatedAt time.Time        `json:"created_at"`
}

// CompanySummary is the id/name pair embedded in assignment views.
type CompanySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateUserRequest represents the request to create a user.
type CreateUserRequest struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Password  string     `json:"password,omitempty"`
}

// UpdateUserRequest represents the request to update a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Username  *string    `json:"username,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Role      *string    `json:"role,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Password  *string    `json:"password,omitempty"`
}

// AssignPamRequest represents the request to assign a PAM to a company.
type AssignPamRequest struct {
	PamID     uuid.UUID `json:"pam_id"`
	CompanyID uuid.UUID `json:"company_id"`
}
