package portaluser

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse wraps a mutation result with a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// Handler handles HTTP requests for user and PAM assignment management.
type Handler struct {
	users       *UserService
	assignments *PamAssignmentService
	checker     *rbac.Checker
}

// NewHandler creates a new user handler.
func NewHandler(users *UserService, assignments *PamAssignmentService, checker *rbac.Checker) *Handler {
	return &Handler{
		users:       users,
		assignments: assignments,
		checker:     checker,
	}
}

// RegisterRoutes registers the user and assignment routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(rbac.Require(h.checker.CanManageUsers))
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
	r.Route("/pam-assignments", func(r chi.Router) {
		r.Use(rbac.Require(h.checker.CanAssignPAM))
		r.Get("/", h.ListAssignments)
		r.Post("/", h.CreateAssignment)
		r.Delete("/{pamID}", h.DeleteAssignment)
	})
}

// ListUsers returns all portal users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch users"})
		return
	}
	render.JSON(w, r, users)
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, user)
}

// CreateUser creates a new portal user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageResponse{
		Message: "User created successfully",
		User:    &user,
	})
}

// UpdateUser updates an existing user.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{
		Message: "User updated successfully",
		User:    &user,
	})
}

// DeleteUser removes a portal user.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, MessageResponse{Message: "User deleted successfully"})
}

// ListAssignments returns every account manager with their companies.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	views, err := h.assignments.ListAssignments(r.Context())
	if err != nil {
		slog.Error("Failed to list PAM assignments", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch assignments"})
		return
	}
	render.JSON(w, r, views)
}

// CreateAssignment links an account manager to a company.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req AssignPamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	assignment, err := h.assignments.Assign(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, assignment)
}

// DeleteAssignment removes a PAM's assignment to one company, or all of
// their assignments when no company_id query parameter is given.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	pamID, err := uuid.Parse(chi.URLParam(r, "pamID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid PAM ID"})
		return
	}

	var companyID *uuid.UUID
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Invalid company ID"})
			return
		}
		companyID = &id
	}

	if err := h.assignments.Unassign(r.Context(), pamID, companyID); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, MessageResponse{Message: "Assignment removed successfully"})
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var dup ErrEmailAlreadyExists
	var missing ErrMissingField

	switch {
	case errors.Is(err, ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "User not found"})
	case errors.Is(err, company.ErrCompanyNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Company not found"})
	case errors.Is(err, ErrAssignmentNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Assignment not found"})
	case errors.Is(err, ErrNotAccountManager):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "User is not a Partner Account Manager"})
	case errors.As(err, &dup):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: dup.Error()})
	case errors.As(err, &missing):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: missing.Error()})
	default:
		slog.Error("User operation failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
	}
}
