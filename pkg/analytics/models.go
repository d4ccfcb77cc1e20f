package analytics

import "github.com/google/uuid"

// PartnerPerformance summarizes one company's deal activity.
type PartnerPerformance struct {
	CompanyID    uuid.UUID `json:"company_id"`
	CompanyName  string    `json:"company_name"`
	PamName      string    `json:"pam_name,omitempty"`
	TotalDeals   int       `json:"total_deals"`
	WonDeals     int       `json:"won_deals"`
	TotalRevenue float64   `json:"total_revenue"`
	Tags         []string  `json:"tags"`
}

// GetCompanyID implements rbac.CompanyScoped.
func (p PartnerPerformance) GetCompanyID() uuid.UUID {
	return p.CompanyID
}

// DashboardStats aggregates the rows visible to one user.
type DashboardStats struct {
	TotalCompanies int     `json:"total_companies"`
	TotalDeals     int     `json:"total_deals"`
	WonDeals       int     `json:"won_deals"`
	ActiveDeals    int     `json:"active_deals"`
	TotalRevenue   float64 `json:"total_revenue"`
}
