package login

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/portaluser"
	"github.com/tendant/partner-portal/pkg/rbac"
	"golang.org/x/exp/slog"
)

// AssignmentLister resolves the companies assigned to an account manager.
// Implemented by the PAM assignment repository.
type AssignmentLister interface {
	ListAssignedCompanyIDs(ctx context.Context, pamID uuid.UUID) ([]uuid.UUID, error)
}

// LoginService authenticates users and mints access tokens.
type LoginService struct {
	users       *portaluser.UserService
	assignments AssignmentLister
	jwt         *Jwt
}

// NewLoginService creates a new login service.
func NewLoginService(users *portaluser.UserService, assignments AssignmentLister, jwt *Jwt) *LoginService {
	return &LoginService{
		users:       users,
		assignments: assignments,
		jwt:         jwt,
	}
}

// Login verifies the credentials and returns a signed access token with the
// user's scope claims, its expiry, and the user record.
func (s *LoginService) Login(ctx context.Context, email, password string) (string, time.Time, portaluser.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, portaluser.ErrUserNotFound) {
			return "", time.Time{}, portaluser.User{}, ErrInvalidCredentials
		}
		return "", time.Time{}, portaluser.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.users.VerifyPassword(user, password) {
		slog.Warn("Rejected login with wrong password", "user", user.ID)
		return "", time.Time{}, portaluser.User{}, ErrInvalidCredentials
	}

	claims := map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
	}
	if user.CompanyID != nil {
		claims["company_id"] = user.CompanyID.String()
	}
	if user.Role == rbac.RolePartnerAccountManager {
		companyIDs, err := s.assignments.ListAssignedCompanyIDs(ctx, user.ID)
		if err != nil {
			return "", time.Time{}, portaluser.User{}, fmt.Errorf("failed to load assignments: %w", err)
		}
		assigned := make([]string, len(companyIDs))
		for i, id := range companyIDs {
			assigned[i] = id.String()
		}
		claims["assigned_company_ids"] = assigned
	}

	token, expiry, err := s.jwt.CreateAccessToken(claims)
	if err != nil {
		return "", time.Time{}, portaluser.User{}, err
	}

	slog.Info("User logged in", "user", user.ID, "role", user.Role)
	return token, expiry, user, nil
}
