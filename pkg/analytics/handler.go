package analytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler handles HTTP requests for analytics.
type Handler struct {
	service *AnalyticsService
	checker *rbac.Checker
}

// NewHandler creates a new analytics handler.
func NewHandler(service *AnalyticsService, checker *rbac.Checker) *Handler {
	return &Handler{
		service: service,
		checker: checker,
	}
}

// RegisterRoutes registers the analytics routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(rbac.Require(h.checker.CanViewAnalytics)).
		Get("/analytics/partner-performance", h.GetPartnerPerformance)
	r.With(rbac.RequireSection(h.checker, rbac.SectionDashboard)).
		Get("/dashboard/stats", h.GetDashboardStats)
}

// GetPartnerPerformance returns per-company deal totals within the user's
// scope.
func (h *Handler) GetPartnerPerformance(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	rows, err := h.service.PartnerPerformance(r.Context())
	if err != nil {
		slog.Error("Failed to compute partner performance", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch analytics"})
		return
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		slog.Error("Failed to resolve company scope", "user", user, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch analytics"})
		return
	}

	render.JSON(w, r, rbac.FilterByAccess(user, scope, rows))
}

// GetDashboardStats returns aggregate counts over the user's visible
// companies and deals.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	user, _ := rbac.UserFromContext(r.Context())

	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		slog.Error("Failed to list companies", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}
	deals, err := h.service.ListDeals(r.Context())
	if err != nil {
		slog.Error("Failed to list deals", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	scope, err := h.checker.AccessibleCompanyIDs(r.Context(), user)
	if err != nil {
		slog.Error("Failed to resolve company scope", "user", user, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	stats := h.service.DashboardStats(
		rbac.FilterByAccess(user, scope, companies),
		rbac.FilterByAccess(user, scope, deals))
	render.JSON(w, r, stats)
}
