package portaluser

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when no user exists for the given id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrNotAccountManager is returned when a PAM assignment targets a user who
// does not hold the Partner Account Manager role.
var ErrNotAccountManager = errors.New("user is not a partner account manager")

// ErrAssignmentNotFound is returned when removing an assignment that does
// not exist.
var ErrAssignmentNotFound = errors.New("pam assignment not found")

// ErrEmailAlreadyExists is returned when a create or update would reuse an
// existing email address.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("user with this email already exists: %s", e.Email)
}

// ErrMissingField is returned when a required field is absent on create.
type ErrMissingField struct {
	Field string
}

func (e ErrMissingField) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
