package target

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
	Message string  `json:"message"`
	Target  *Target `json:"target,omitempty"`
}

// Handler handles HTTP requests for target management.
type Handler struct {
	service *TargetService
	checker *rbac.Checker
}

// NewHandler creates a new target handler.
func NewHandler(service *TargetService, checker *rbac.Checker) *Handler {
	return &Handler{
		service: service,
		checker: checker,
	}
}

// RegisterRoutes registers the target routes. Reading is gated by the
// targets section; mutations are administrator-only.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/targets", func(r chi.Router) {
		r.Use(rbac.RequireSection(h.checker, rbac.SectionTargets))
		r.Get("/", h.ListTargets)
		r.Post("/", h.CreateTarget)
		r.Put("/{id}", h.UpdateTarget)
		r.Delete("/{id}", h.DeleteTarget)
	})
}

// ListTargets returns all targets.
func (h *Handler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.service.ListTargets(r.Context())
	if err != nil {
		slog.Error("Failed to list targets", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch targets"})
		return
	}
	render.JSON(w, r, targets)
}

// CreateTarget creates a new target.
func (h *Handler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())
	if !h.checker.CanAddTargets(user) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	var req CreateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	target, err := h.service.CreateTarget(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageResponse{
		Message: "Target created successfully",
		Target:  &target,
	})
}

// UpdateTarget updates a target's value or description.
func (h *Handler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())
	if !h.checker.CanAddTargets(user) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid target ID"})
		return
	}

	var req UpdateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	target, err := h.service.UpdateTarget(r.Context(), id, req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{
		Message: "Target updated successfully",
		Target:  &target,
	})
}

// DeleteTarget removes a target.
func (h *Handler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())
	if !h.checker.CanAddTargets(user) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "Permission denied"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid target ID"})
		return
	}

	if err := h.service.DeleteTarget(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Target deleted successfully"})
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidEnum ErrInvalidEnum
	var missing ErrMissingField

	switch {
	case errors.Is(err, ErrTargetNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Target not found"})
	case errors.As(err, &invalidEnum):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: invalidEnum.Error()})
	case errors.As(err, &missing):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: missing.Error()})
	default:
		slog.Error("Target operation failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
	}
}
