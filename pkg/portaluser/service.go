package portaluser

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/rbac"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// defaultPassword is set on accounts created without an explicit password.
// Users are expected to change it on first login.
const defaultPassword = "TempPass123!"

// UserService provides methods for managing portal users.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser validates and creates a new user. Accounts created without a
// password receive the default one.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	switch {
	case req.Username == "":
		return User{}, ErrMissingField{Field: "username"}
	case req.Email == "":
		return User{}, ErrMissingField{Field: "email"}
	case req.Role == "":
		return User{}, ErrMissingField{Field: "role"}
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return User{}, ErrEmailAlreadyExists{Email: req.Email}
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, fmt.Errorf("failed to check duplicate email: %w", err)
	}

	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         rbac.ParseRole(req.Role),
		CompanyID:    req.CompanyID,
		PasswordHash: hash,
	})
	if err != nil {
		return User{}, err
	}

	slog.Info("Created portal user", "user", user.ID, "role", user.Role)
	return user, nil
}

// UpdateUser applies the non-nil fields of req to the user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.GetUserByEmail(ctx, *req.Email); err == nil {
			return User{}, ErrEmailAlreadyExists{Email: *req.Email}
		} else if !errors.Is(err, ErrUserNotFound) {
			return User{}, fmt.Errorf("failed to check duplicate email: %w", err)
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = rbac.ParseRole(*req.Role)
	}
	if req.CompanyID != nil {
		user.CompanyID = req.CompanyID
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	return s.repo.UpdateUser(ctx, user)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}

// VerifyPassword checks a plaintext password against the user's stored hash.
func (s *UserService) VerifyPassword(user User, password string) bool {
	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil
}

// CompanyDirectory resolves company details for assignment views.
// Implemented by the company repository and service.
type CompanyDirectory interface {
	GetCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
}

// PamAssignmentService manages the account-manager/company assignment set.
type PamAssignmentService struct {
	users       UserRepository
	assignments PamAssignmentRepository
	companies   CompanyDirectory
}

// NewPamAssignmentService creates a new assignment service.
func NewPamAssignmentService(users UserRepository, assignments PamAssignmentRepository,
	companies CompanyDirectory) *PamAssignmentService {
	return &PamAssignmentService{
		users:       users,
		assignments: assignments,
		companies:   companies,
	}
}

// ListAssignedCompanyIDs returns the companies assigned to an account
// manager. Read at login time to mint the scope claims.
func (s *PamAssignmentService) ListAssignedCompanyIDs(ctx context.Context, pamID uuid.UUID) ([]uuid.UUID, error) {
	return s.assignments.ListAssignedCompanyIDs(ctx, pamID)
}

// ListAssignments returns every account manager with their assigned
// companies.
func (s *PamAssignmentService) ListAssignments(ctx context.Context) ([]AssignmentView, error) {
	pams, err := s.users.ListUsersByRole(ctx, rbac.RolePartnerAccountManager)
	if err != nil {
		return nil, fmt.Errorf("failed to list account managers: %w", err)
	}

	views := make([]AssignmentView, 0, len(pams))
	for _, pam := range pams {
		companyIDs, err := s.assignments.ListAssignedCompanyIDs(ctx, pam.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments for %s: %w", pam.ID, err)
		}

		summaries := make([]CompanySummary, 0, len(companyIDs))
		for _, companyID := range companyIDs {
			c, err := s.companies.GetCompany(ctx, companyID)
			if err != nil {
				// Assignment rows may outlive a deleted company
				slog.Warn("Skipping assignment with missing company", "pam", pam.ID, "company", companyID)
				continue
			}
			summaries = append(summaries, CompanySummary{ID: c.ID, Name: c.Name})
		}

		views = append(views, AssignmentView{
			PamID:     pam.ID,
			PamName:   pam.Username,
			PamEmail:  pam.Email,
			Companies: summaries,
			CreatedAt: pam.CreatedAt,
		})
	}
	return views, nil
}

// Assign links an account manager to a company after validating the role.
func (s *PamAssignmentService) Assign(ctx context.Context, req AssignPamRequest) (PamAssignment, error) {
	pam, err := s.users.GetUser(ctx, req.PamID)
	if err != nil {
		return PamAssignment{}, err
	}
	if pam.Role != rbac.RolePartnerAccountManager {
		return PamAssignment{}, ErrNotAccountManager
	}

	if _, err := s.companies.GetCompany(ctx, req.CompanyID); err != nil {
		return PamAssignment{}, err
	}

	if err := s.assignments.Assign(ctx, req.PamID, req.CompanyID); err != nil {
		return PamAssignment{}, err
	}
	return PamAssignment{PamID: req.PamID, CompanyID: req.CompanyID}, nil
}

// Unassign removes one assignment, or every assignment of the PAM when
// companyID is nil.
func (s *PamAssignmentService) Unassign(ctx context.Context, pamID uuid.UUID, companyID *uuid.UUID) error {
	if _, err := s.users.GetUser(ctx, pamID); err != nil {
		return err
	}
	if companyID == nil {
		return s.assignments.UnassignAll(ctx, pamID)
	}

	assigned, err := s.assignments.ListAssignedCompanyIDs(ctx, pamID)
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}
	found := false
	for _, id := range assigned {
		if id == *companyID {
			found = true
			break
		}
	}
	if !found {
		return ErrAssignmentNotFound
	}
	return s.assignments.Unassign(ctx, pamID, *companyID)
}
