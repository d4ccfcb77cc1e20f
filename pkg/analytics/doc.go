// Package analytics computes partner performance and dashboard aggregates
// over companies and deals.
package analytics
