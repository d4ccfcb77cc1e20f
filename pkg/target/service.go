package target

import (
	"context"

	"github.com/google/uuid"
)

// TargetService provides methods for managing targets.
type TargetService struct {
	repo TargetRepository
}

// NewTargetService creates a new target service.
func NewTargetService(repo TargetRepository) *TargetService {
	return &TargetService{
		repo: repo,
	}
}

// GetTarget retrieves a target by id.
func (s *TargetService) GetTarget(ctx context.Context, id uuid.UUID) (Target, error) {
	return s.repo.GetTarget(ctx, id)
}

// ListTargets retrieves all targets.
func (s *TargetService) ListTargets(ctx context.Context) ([]Target, error) {
	return s.repo.ListTargets(ctx)
}

// CreateTarget validates enums and creates a new target.
func (s *TargetService) CreateTarget(ctx context.Context, req CreateTargetRequest) (Target, error) {
	switch {
	case req.TargetType == "":
		return Target{}, ErrMissingField{Field: "target_type"}
	case req.TargetEntityID == uuid.Nil:
		return Target{}, ErrMissingField{Field: "target_entity_id"}
	case req.TargetMetric == "":
		return Target{}, ErrMissingField{Field: "target_metric"}
	case req.TargetValue == nil:
		return Target{}, ErrMissingField{Field: "target_value"}
	case req.TargetPeriod == "":
		return Target{}, ErrMissingField{Field: "target_period"}
	}

	if !validType(req.TargetType) {
		return Target{}, ErrInvalidEnum{
			Field: "target type",
			Value: string(req.TargetType),
			Valid: []string{string(TypePAM), string(TypeCompany), string(TypeSPOC)},
		}
	}
	if !validMetric(req.TargetMetric) {
		return Target{}, ErrInvalidEnum{
			Field: "target metric",
			Value: string(req.TargetMetric),
			Valid: []string{string(MetricDealsCount), string(MetricRevenue), string(MetricWonDeals)},
		}
	}
	if !validPeriod(req.TargetPeriod) {
		return Target{}, ErrInvalidEnum{
			Field: "target period",
			Value: string(req.TargetPeriod),
			Valid: []string{string(PeriodMonthly), string(PeriodQuarterly), string(PeriodYearly)},
		}
	}

	return s.repo.CreateTarget(ctx, Target{
		TargetType:     req.TargetType,
		TargetEntityID: req.TargetEntityID,
		TargetMetric:   req.TargetMetric,
		TargetValue:    *req.TargetValue,
		TargetPeriod:   req.TargetPeriod,
		Description:    req.Description,
	})
}

// UpdateTarget applies the non-nil fields of req to the target.
func (s *TargetService) UpdateTarget(ctx context.Context, id uuid.UUID, req UpdateTargetRequest) (Target, error) {
	target, err := s.repo.GetTarget(ctx, id)
	if err != nil {
		return Target{}, err
	}

	if req.TargetValue != nil {
		target.TargetValue = *req.TargetValue
	}
	if req.Description != nil {
		target.Description = *req.Description
	}

	return s.repo.UpdateTarget(ctx, target)
}

// DeleteTarget removes a target.
func (s *TargetService) DeleteTarget(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTarget(ctx, id)
}
