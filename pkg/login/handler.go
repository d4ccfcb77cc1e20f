package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/partner-portal/pkg/rbac"
)

const accessTokenCookie = "access_token"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse confirms logout.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler handles HTTP requests for authentication.
type Handler struct {
	service *LoginService
	jwt     *Jwt
}

// NewHandler creates a new auth handler.
func NewHandler(service *LoginService, jwt *Jwt) *Handler {
	return &Handler{
		service: service,
		jwt:     jwt,
	}
}

// RegisterRoutes registers the public auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}

// Login authenticates the user, sets the access token cookie and returns
// the token with the user record.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Email and password are required"})
		return
	}

	token, expiry, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		slog.Error("Login failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An internal error occurred"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: h.jwt.CookieHttpOnly,
		Secure:   h.jwt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	render.JSON(w, r, LoginResponse{Token: token, User: user})
}

// Logout clears the access token cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: h.jwt.CookieHttpOnly,
		Secure:   h.jwt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	render.JSON(w, r, MessageResponse{Message: "Logged out"})
}

// Me echoes the authenticated user held in the request context.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := rbac.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Unauthorized"})
		return
	}
	render.JSON(w, r, user)
}
