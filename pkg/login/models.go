package login

import "github.com/tendant/partner-portal/pkg/portaluser"

// LoginRequest represents the login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string          `json:"token"`
	User  portaluser.User `json:"user"`
}
