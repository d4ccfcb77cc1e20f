package rbac

import (
	"log/slog"
	"net/http"
)

// RequireSection returns a middleware that denies requests from users who
// may not enter the given section.
// Returns 401 Unauthorized if not authenticated.
// Returns 403 Forbidden if authenticated but denied.
// Must be used after AuthUserMiddleware.
func RequireSection(checker *Checker, section Section) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				slog.Debug("Unauthenticated request to section", "section", section)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !checker.CanAccessSection(user, section) {
				slog.Warn("User denied section access",
					"user", user,
					"section", section)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Require returns a middleware that denies requests failing the given
// capability predicate, e.g. Require(checker.CanManageUsers).
// Must be used after AuthUserMiddleware.
func Require(predicate func(*AuthUser) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !predicate(user) {
				slog.Warn("User lacks required capability", "user", user)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
