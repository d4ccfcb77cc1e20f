package target

import (
	"time"

	"github.com/google/uuid"
)

// Type names the kind of entity a target applies to.
type Type string

const (
	TypePAM     Type = "PAM"
	TypeCompany Type = "Company"
	TypeSPOC    Type = "SPOC"
)

// Metric names the measured quantity.
type Metric string

const (
	MetricDealsCount Metric = "deals_count"
	MetricRevenue    Metric = "revenue"
	MetricWonDeals   Metric = "won_deals"
)

// Period names the measurement window.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Target represents a performance target.
type Target struct {
	ID             uuid.UUID `json:"id"`
	TargetType     Type      `json:"target_type"`
	TargetEntityID uuid.UUID `json:"target_entity_id"`
	TargetMetric   Metric    `json:"target_metric"`
	TargetValue    float64   `json:"target_value"`
	TargetPeriod   Period    `json:"target_period"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateTargetRequest represents the request to create a target.
type CreateTargetRequest struct {
	TargetType     Type      `json:"target_type"`
	TargetEntityID uuid.UUID `json:"target_entity_id"`
	TargetMetric   Metric    `json:"target_metric"`
	TargetValue    *float64  `json:"target_value"`
	TargetPeriod   Period    `json:"target_period"`
	Description    string    `json:"description,omitempty"`
}

// UpdateTargetRequest represents the request to update a target. Only the
// value and description are mutable.
type UpdateTargetRequest struct {
	TargetValue *float64 `json:"target_value,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func validType(t Type) bool {
	switch t {
	case TypePAM, TypeCompany, TypeSPOC:
		return true
	}
	return false
}

func validMetric(m Metric) bool {
	switch m {
	case MetricDealsCount, MetricRevenue, MetricWonDeals:
		return true
	}
	return false
}

func validPeriod(p Period) bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}
