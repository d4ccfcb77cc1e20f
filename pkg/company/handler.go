package company

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse wraps a mutation result with a confirmation message.
type MessageResponse struct {
	Message string   `json:"message"`
	Company *Company `json:"company,omitempty"`
}

// Handler handles HTTP requests for company management.
type Handler struct {
	service *CompanyService
	checker *rbac.Checker
}

// NewHandler creates a new company handler.
func NewHandler(service *CompanyService, checker *rbac.Checker) *Handler {
	return &Handler{
		service: service,
		checker: checker,
	}
}

// RegisterRoutes registers the company routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/companies", func(r chi.Router) {
		r.Get("/", h.ListCompanies)
		r.Post("/", h.CreateCompany)
		r.Get("/{id}", h.GetCompany)
		r.Put("/{id}", h.UpdateCompany)
		r.Delete("/{id}", h.DeleteCompany)
	})
}

// ListCompanies returns the companies visible to the requesting user.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		slog.Error("Failed to list companies", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch companies"})
		return
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		slog.Error("Failed to resolve company scope", "user", user, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch companies"})
		return
	}

	visible := rbac.FilterByAccess(user, scope, companies)
	render.JSON(w, r, visible)
}

// GetCompany returns a single company if it is within the user's scope.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid company ID"})
		return
	}

	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch company"})
		return
	}
	if len(rbac.FilterByAccess(user, scope, []Company{company})) == 0 {
		// Out-of-scope rows read as absent, not forbidden
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Company not found"})
		return
	}

	render.JSON(w, r, company)
}

// CreateCompany creates a new company.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())
	if !h.checker.CanAddCompany(user) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	company, err := h.service.CreateCompany(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageResponse{
		Message: "Company created successfully",
		Company: &company,
	})
}

// UpdateCompany updates an existing company.
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid company ID"})
		return
	}

	if !h.checker.CanEditCompany(user, id) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	var req UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	company, err := h.service.UpdateCompany(r.Context(), id, req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{
		Message: "Company updated successfully",
		Company: &company,
	})
}

// DeleteCompany removes a company.
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid company ID"})
		return
	}

	if !h.checker.CanEditCompany(user, id) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	if err := h.service.DeleteCompany(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Company deleted successfully"})
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var dup ErrDuplicateCompany
	var missing ErrMissingFields

	switch {
	case errors.Is(err, ErrCompanyNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Company not found"})
	case errors.As(err, &dup):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: dup.Error()})
	case errors.As(err, &missing):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: missing.Error()})
	default:
		slog.Error("Company operation failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
	}
}
