package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Company represents a partner company.
type Company struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	CompanyType      string     `json:"company_type"`
	Website          string     `json:"website,omitempty"`
	ContactEmail     string     `json:"contact_email"`
	ContactPhone     string     `json:"contact_phone,omitempty"`
	LogoURL          string     `json:"logo_url,omitempty"`
	SpocName         string     `json:"spoc_name"`
	SpocEmail        string     `json:"spoc_email"`
	SpocPhone        string     `json:"spoc_phone,omitempty"`
	Country          string     `json:"country"`
	ServingRegions   string     `json:"serving_regions"`
	PartnerStage     string     `json:"partner_stage"`
	Published        bool       `json:"published"`
	Tags             []string   `json:"tags"`
	PamID            *uuid.UUID `json:"pam_id,omitempty"`
	PayoutPercentage float64    `json:"payout_percentage"`
	CreatedAt        time.Time  `json:"created_at"`
}

// GetCompanyID implements rbac.CompanyScoped, scoping a company to itself.
func (c Company) GetCompanyID() uuid.UUID {
	return c.ID
}

// CreateCompanyRequest represents the request to create a company.
type CreateCompanyRequest struct {
	Name             string     `json:"name"`
	CompanyType      string     `json:"company_type"`
	Website          string     `json:"website,omitempty"`
	ContactEmail     string     `json:"contact_email"`
	ContactPhone     string     `json:"contact_phone,omitempty"`
	LogoURL          string     `json:"logo_url,omitempty"`
	SpocName         string     `json:"spoc_name"`
	SpocEmail        string     `json:"spoc_email"`
	SpocPhone        string     `json:"spoc_phone,omitempty"`
	Country          string     `json:"country"`
	ServingRegions   string     `json:"serving_regions"`
	PartnerStage     string     `json:"partner_stage"`
	Published        bool       `json:"published"`
	Tags             []string   `json:"tags,omitempty"`
	PamID            *uuid.UUID `json:"pam_id,omitempty"`
	PayoutPercentage *float64   `json:"payout_percentage,omitempty"`
}

// UpdateCompanyRequest represents the request to update a company. Nil
// fields are left unchanged.
type UpdateCompanyRequest struct {
	Name             *string    `json:"name,omitempty"`
	CompanyType      *string    `json:"company_type,omitempty"`
	Website          *string    `json:"website,omitempty"`
	ContactEmail     *string    `json:"contact_email,omitempty"`
	ContactPhone     *string    `json:"contact_phone,omitempty"`
	LogoURL          *string    `json:"logo_url,omitempty"`
	SpocName         *string    `json:"spoc_name,omitempty"`
	SpocEmail        *string    `json:"spoc_email,omitempty"`
	SpocPhone        *string    `json:"spoc_phone,omitempty"`
	Country          *string    `json:"country,omitempty"`
	ServingRegions   *string    `json:"serving_regions,omitempty"`
	PartnerStage     *string    `json:"partner_stage,omitempty"`
	Published        *bool      `json:"published,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	PamID            *uuid.UUID `json:"pam_id,omitempty"`
	ClearPam         bool       `json:"clear_pam,omitempty"`
	PayoutPercentage *float64   `json:"payout_percentage,omitempty"`
}

// DefaultPayoutPercentage is the commission fraction applied to won deals
// when a company has no explicit percentage configured.
const DefaultPayoutPercentage = 0.10

// joinTags converts a tag slice to its stored comma-separated form.
// A tag must not contain a comma; one that does will split into
// separate tags on read.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// splitTags converts the stored comma-separated form back to a slice.
func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
