package payout

import "errors"

var (
	// ErrPayoutNotFound is returned when no won deal backs the payout.
	ErrPayoutNotFound = errors.New("payout not found")
)
