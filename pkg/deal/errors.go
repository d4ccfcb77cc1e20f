package deal

import (
	"errors"
	"fmt"
)

// ErrDealNotFound is returned when no deal exists for the given id.
var ErrDealNotFound = errors.New("deal not found")

// ErrInvalidStatus is returned when a status outside the closed set is used.
type ErrInvalidStatus struct {
	Status Status
}

func (e ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid deal status: %q", e.Status)
}

// ErrMissingField is returned when a required field is absent on create.
type ErrMissingField struct {
	Field string
}

func (e ErrMissingField) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
