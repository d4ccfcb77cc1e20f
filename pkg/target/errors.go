package target

import (
	"errors"
	"fmt"
)

// ErrTargetNotFound is returned when no target exists for the given id.
var ErrTargetNotFound = errors.New("target not found")

// ErrInvalidEnum is returned when a closed-enumeration field holds a value
// outside its set.
type ErrInvalidEnum struct {
	Field string
	Value string
	Valid []string
}

func (e ErrInvalidEnum) Error() string {
	return fmt.Sprintf("invalid %s %q, valid values: %v", e.Field, e.Value, e.Valid)
}

// ErrMissingField is returned when a required field is absent on create.
type ErrMissingField struct {
	Field string
}

func (e ErrMissingField) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
