// Package payout computes partner commissions for won deals and tracks
// their approval status.
package payout
