package payout

import (
	"time"

	"github.com/google/uuid"
)

// Status is the approval state of a payout.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ValidStatus reports whether s is a known payout status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Payout is a commission row derived from a won deal.
type Payout struct {
	DealID           uuid.UUID `json:"deal_id"`
	CompanyID        uuid.UUID `json:"company_id"`
	CompanyName      string    `json:"company_name"`
	CustomerCompany  string    `json:"customer_company"`
	Revenue          float64   `json:"revenue"`
	PayoutPercentage float64   `json:"payout_percentage"`
	Amount           float64   `json:"amount"`
	Status           Status    `json:"status"`
	DealClosedAt     time.Time `json:"deal_closed_at"`
}

// GetCompanyID implements rbac.CompanyScoped.
func (p Payout) GetCompanyID() uuid.UUID {
	return p.CompanyID
}

// Summary aggregates the payouts visible to a user.
type Summary struct {
	DealCount   int     `json:"deal_count"`
	TotalPayout float64 `json:"total_payout"`
}
