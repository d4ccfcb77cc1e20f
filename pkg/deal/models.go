package deal

import (
	"time"

	"github.com/google/uuid"
)

// Status is the deal lifecycle state.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusWon        Status = "Won"
	StatusLost       Status = "Lost"
)

// ArchivedStatuses are the closed states listed by the archived endpoint.
var ArchivedStatuses = []Status{StatusWon, StatusLost}

// ActiveStatuses are the states counted as active in dashboard stats.
var ActiveStatuses = []Status{StatusOpen, StatusInProgress}

// ValidStatus reports whether s is one of the closed status set.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusWon, StatusLost:
		return true
	}
	return false
}

// Deal represents a registered deal belonging to a partner company.
type Deal struct {
	ID                 uuid.UUID `json:"id"`
	CompanyID          uuid.UUID `json:"company_id"`
	CustomerCompany    string    `json:"customer_company"`
	CustomerCompanyURL string    `json:"customer_company_url,omitempty"`
	CustomerSpoc       string    `json:"customer_spoc"`
	CustomerSpocEmail  string    `json:"customer_spoc_email"`
	CustomerSpocPhone  string    `json:"customer_spoc_phone,omitempty"`
	RevenueARR         float64   `json:"revenue_arr"`
	RevenueActual      *float64  `json:"revenue_actual,omitempty"`
	Status             Status    `json:"status"`
	Comments           string    `json:"comments,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// GetCompanyID implements rbac.CompanyScoped.
func (d Deal) GetCompanyID() uuid.UUID {
	return d.CompanyID
}

// Revenue returns the realized revenue when known, else the registered ARR.
func (d Deal) Revenue() float64 {
	if d.RevenueActual != nil {
		return *d.RevenueActual
	}
	return d.RevenueARR
}

// CreateDealRequest represents the request to register a deal.
type CreateDealRequest struct {
	CompanyID          uuid.UUID `json:"company_id"`
	CustomerCompany    string    `json:"customer_company"`
	CustomerCompanyURL string    `json:"customer_company_url,omitempty"`
	CustomerSpoc       string    `json:"customer_spoc"`
	CustomerSpocEmail  string    `json:"customer_spoc_email"`
	CustomerSpocPhone  string    `json:"customer_spoc_phone,omitempty"`
	RevenueARR         *float64  `json:"revenue_arr"`
	Status             Status    `json:"status,omitempty"`
	Comments           string    `json:"comments,omitempty"`
}

// UpdateDealRequest represents the request to update a deal. Nil fields are
// left unchanged.
type UpdateDealRequest struct {
	CustomerCompany    *string  `json:"customer_company,omitempty"`
	CustomerCompanyURL *string  `json:"customer_company_url,omitempty"`
	CustomerSpoc       *string  `json:"customer_spoc,omitempty"`
	CustomerSpocEmail  *string  `json:"customer_spoc_email,omitempty"`
	CustomerSpocPhone  *string  `json:"customer_spoc_phone,omitempty"`
	RevenueARR         *float64 `json:"revenue_arr,omitempty"`
	RevenueActual      *float64 `json:"revenue_actual,omitempty"`
	Status             *Status  `json:"status,omitempty"`
	Comments           *string  `json:"comments,omitempty"`
}
