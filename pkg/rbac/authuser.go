package rbac

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// AuthUser is the per-request user context produced from verified token
// claims. It is immutable for the lifetime of one request and never
// persisted by this package.
type AuthUser struct {
	ID    uuid.UUID `json:"user_id"`
	Email string    `json:"email,omitempty"`
	Role  Role      `json:"role"`
	// CompanyID is the partner-side affiliation for SPOC Admin and Team
	// Member roles. Nil for unaffiliated users.
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	// AssignedCompanyIDs is the many-to-many assignment set for the
	// Partner Account Manager role.
	AssignedCompanyIDs []uuid.UUID `json:"assigned_company_ids,omitempty"`
}

func (u *AuthUser) LogValue() slog.Value {
	if u == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("user", u.ID.String()),
		slog.String("role", string(u.Role)),
	)
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "rbac context value " + k.name
}

// AuthUserKey locates the *AuthUser placed in the request context by
// AuthUserMiddleware.
var AuthUserKey = &contextKey{"AuthUser"}

const accessTokenCookie = "access_token"

// UserFromContext returns the authenticated user stored in ctx, if any.
func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthUser)
	return user, ok
}

// WithUser returns a copy of ctx carrying user. Intended for tests and
// internal callers that bypass the HTTP middleware.
func WithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, AuthUserKey, user)
}

// AuthUserMiddleware builds an AuthUser from the verified JWT claims and
// stores it in the request context. It must run after jwtauth verification.
func AuthUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			http.Error(w, "missing or invalid JWT", http.StatusUnauthorized)
			return
		}

		user, err := userFromClaims(claims)
		if err != nil {
			slog.Warn("Failed building auth user from claims", "err", err)
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		slog.Debug("authenticated user", "user", user)

		ctx := context.WithValue(r.Context(), AuthUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromClaims(claims map[string]interface{}) (*AuthUser, error) {
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, &ErrBadClaim{Claim: "user_id", Value: userIDStr}
	}

	user := &AuthUser{ID: userID}

	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = ParseRole(role)
	}
	if companyIDStr, ok := claims["company_id"].(string); ok && companyIDStr != "" {
		companyID, err := uuid.Parse(companyIDStr)
		if err != nil {
			return nil, &ErrBadClaim{Claim: "company_id", Value: companyIDStr}
		}
		user.CompanyID = &companyID
	}
	if raw, ok := claims["assigned_company_ids"].([]interface{}); ok {
		for _, v := range raw {
			idStr, _ := v.(string)
			id, err := uuid.Parse(idStr)
			if err != nil {
				return nil, &ErrBadClaim{Claim: "assigned_company_ids", Value: idStr}
			}
			user.AssignedCompanyIDs = append(user.AssignedCompanyIDs, id)
		}
	}

	return user, nil
}

// Verifier wraps jwtauth verification with the token sources the portal
// accepts: Authorization header and the access token cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromCookie)(next)
	}
}

// TokenFromCookie reads the access token from the session cookie.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(accessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
