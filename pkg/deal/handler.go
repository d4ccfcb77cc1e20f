package deal

import (
	"context"
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
	Message string `json:"message"`
	Deal    *Deal  `json:"deal,omitempty"`
}

// Handler handles HTTP requests for deal management.
type Handler struct {
	service *DealService
	checker *rbac.Checker
}

// NewHandler creates a new deal handler.
func NewHandler(service *DealService, checker *rbac.Checker) *Handler {
	return &Handler{
		service: service,
		checker: checker,
	}
}

// RegisterRoutes registers the deal routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deals", func(r chi.Router) {
		r.Get("/", h.ListDeals)
		r.Post("/", h.CreateDeal)
		r.Get("/archived", h.ListArchivedDeals)
		r.Put("/{id}", h.UpdateDeal)
		r.Delete("/{id}", h.DeleteDeal)
	})
}

// ListDeals returns the deals visible to the requesting user.
func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, h.service.ListDeals)
}

// ListArchivedDeals returns closed deals (Won or Lost) visible to the user.
func (h *Handler) ListArchivedDeals(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, h.service.ListArchivedDeals)
}

func (h *Handler) listFiltered(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context) ([]Deal, error)) {
	user, _ := rbac.UserFromContext(r.Context())

	deals, err := list(r.Context())
	if err != nil {
		slog.Error("Failed to list deals", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch deals"})
		return
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		slog.Error("Failed to resolve company scope", "user", user, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch deals"})
		return
	}

	render.JSON(w, r, rbac.FilterByAccess(user, scope, deals))
}

// CreateDeal registers a new deal for a company within the user's scope.
func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())
	if !h.checker.CanAddDeals(user) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	var req CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Registering a deal for another company requires edit rights there
	if !h.checker.CanEditDeal(user, Deal{CompanyID: req.CompanyID}) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	deal, err := h.service.CreateDeal(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageResponse{
		Message: "Deal created successfully",
		Deal:    &deal,
	})
}

// UpdateDeal updates an existing deal.
func (h *Handler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid deal ID"})
		return
	}

	deal, err := h.service.GetDeal(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	if !h.checker.CanEditDeal(user, deal) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	var req UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateDeal(r.Context(), id, req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{
		Message: "Deal updated successfully",
		Deal:    &updated,
	})
}

// DeleteDeal removes a deal.
func (h *Handler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid deal ID"})
		return
	}

	deal, err := h.service.GetDeal(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	if !h.checker.CanEditDeal(user, deal) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	if err := h.service.DeleteDeal(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Deal deleted successfully"})
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidStatus ErrInvalidStatus
	var missing ErrMissingField

	switch {
	case errors.Is(err, ErrDealNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Deal not found"})
	case errors.As(err, &invalidStatus):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: invalidStatus.Error()})
	case errors.As(err, &missing):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: missing.Error()})
	default:
		slog.Error("Deal operation failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
	}
}
