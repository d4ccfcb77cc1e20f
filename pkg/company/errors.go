package company

import (
	"errors"
	"fmt"
)

// ErrCompanyNotFound is returned when no company exists for the given id.
var ErrCompanyNotFound = errors.New("company not found")

// ErrDuplicateCompany is returned when a create or update would violate a
// uniqueness rule.
type ErrDuplicateCompany struct {
	Field string
	Value string
}

func (e ErrDuplicateCompany) Error() string {
	return fmt.Sprintf("a company with this %s already exists: %s", e.Field, e.Value)
}

// ErrMissingFields is returned when required fields are absent on create.
type ErrMissingFields struct {
	Fields []string
}

func (e ErrMissingFields) Error() string {
	return fmt.Sprintf("required fields missing: %v", e.Fields)
}
