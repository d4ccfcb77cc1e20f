package login

import "errors"

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	// Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
