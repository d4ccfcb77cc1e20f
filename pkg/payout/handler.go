package payout

import (
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

// MessageResponse confirms a payout status change.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler handles HTTP requests for payouts.
type Handler struct {
	service *PayoutService
	checker *rbac.Checker
}

// NewHandler creates a new payout handler.
func NewHandler(service *PayoutService, checker *rbac.Checker) *Handler {
	return &Handler{
		service: service,
		checker: checker,
	}
}

// RegisterRoutes registers the payout routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payouts", func(r chi.Router) {
		r.Use(rbac.Require(h.checker.CanViewPayouts))
		r.Get("/", h.ListPayouts)
		r.Get("/summary", h.GetSummary)
		r.Post("/{dealID}/approve", h.ApprovePayout)
		r.Post("/{dealID}/reject", h.RejectPayout)
	})
}

// ListPayouts returns the payout rows visible to the requesting user.
func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.listVisible(w, r)
	if err != nil {
		return
	}
	render.JSON(w, r, payouts)
}

// GetSummary totals the payout rows visible to the requesting user.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.listVisible(w, r)
	if err != nil {
		return
	}
	render.JSON(w, r, h.service.Summarize(payouts))
}

// listVisible loads payouts and filters them to the user's scope, writing
// the error response itself on failure.
func (h *Handler) listVisible(w http.ResponseWriter, r *http.Request) ([]Payout, error) {
	user, _ := rbac.UserFromContext(r.Context())

	payouts, err := h.service.ListPayouts(r.Context())
	if err != nil {
		slog.Error("Failed to list payouts", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch payouts"})
		return nil, err
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		slog.Error("Failed to resolve company scope", "user", user, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch payouts"})
		return nil, err
	}

	return rbac.FilterByAccess(user, scope, payouts), nil
}

// ApprovePayout marks the payout of a won deal as approved.
func (h *Handler) ApprovePayout(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusApproved, "Payout approved")
}

// RejectPayout marks the payout of a won deal as rejected.
func (h *Handler) RejectPayout(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusRejected, "Payout rejected")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status Status, message string) {
	dealID, err := uuid.Parse(chi.URLParam(r, "dealID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid deal ID"})
		return
	}

	if err := h.service.SetStatus(r.Context(), dealID, status); err != nil {
		if errors.Is(err, ErrPayoutNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Error: "Payout not found"})
			return
		}
		slog.Error("Failed to set payout status", "deal", dealID, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
		return
	}

	render.JSON(w, r, MessageResponse{Message: message})
}
