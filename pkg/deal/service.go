package deal

import (
	"context"

	"github.com/google/uuid"
)

// DealService provides methods for managing deals.
type DealService struct {
	repo DealRepository
}

// NewDealService creates a new deal service.
func NewDealService(repo DealRepository) *DealService {
	return &DealService{
		repo: repo,
	}
}

// GetDeal retrieves a deal by id.
func (s *DealService) GetDeal(ctx context.Context, id uuid.UUID) (Deal, error) {
	return s.repo.GetDeal(ctx, id)
}

// ListDeals retrieves all deals.
func (s *DealService) ListDeals(ctx context.Context) ([]Deal, error) {
	return s.repo.ListDeals(ctx)
}

// ListArchivedDeals retrieves deals in a closed state (Won or Lost).
func (s *DealService) ListArchivedDeals(ctx context.Context) ([]Deal, error) {
	return s.repo.ListDealsByStatuses(ctx, ArchivedStatuses)
}

// CreateDeal validates and registers a new deal. The status defaults to
// Open when absent.
func (s *DealService) CreateDeal(ctx context.Context, req CreateDealRequest) (Deal, error) {
	switch {
	case req.CompanyID == uuid.Nil:
		return Deal{}, ErrMissingField{Field: "company_id"}
	case req.CustomerCompany == "":
		return Deal{}, ErrMissingField{Field: "customer_company"}
	case req.CustomerSpoc == "":
		return Deal{}, ErrMissingField{Field: "customer_spoc"}
	case req.CustomerSpocEmail == "":
		return Deal{}, ErrMissingField{Field: "customer_spoc_email"}
	case req.RevenueARR == nil:
		return Deal{}, ErrMissingField{Field: "revenue_arr"}
	}

	status := req.Status
	if status == "" {
		status = StatusOpen
	}
	if !ValidStatus(status) {
		return Deal{}, ErrInvalidStatus{Status: status}
	}

	return s.repo.CreateDeal(ctx, Deal{
		CompanyID:          req.CompanyID,
		CustomerCompany:    req.CustomerCompany,
		CustomerCompanyURL: req.CustomerCompanyURL,
		CustomerSpoc:       req.CustomerSpoc,
		CustomerSpocEmail:  req.CustomerSpocEmail,
		CustomerSpocPhone:  req.CustomerSpocPhone,
		RevenueARR:         *req.RevenueARR,
		Status:             status,
		Comments:           req.Comments,
	})
}

// UpdateDeal applies the non-nil fields of req to the deal. The company
// reference is immutable after creation.
func (s *DealService) UpdateDeal(ctx context.Context, id uuid.UUID, req UpdateDealRequest) (Deal, error) {
	deal, err := s.repo.GetDeal(ctx, id)
	if err != nil {
		return Deal{}, err
	}

	if req.CustomerCompany != nil {
		deal.CustomerCompany = *req.CustomerCompany
	}
	if req.CustomerCompanyURL != nil {
		deal.CustomerCompanyURL = *req.CustomerCompanyURL
	}
	if req.CustomerSpoc != nil {
		deal.CustomerSpoc = *req.CustomerSpoc
	}
	if req.CustomerSpocEmail != nil {
		deal.CustomerSpocEmail = *req.CustomerSpocEmail
	}
	if req.CustomerSpocPhone != nil {
		deal.CustomerSpocPhone = *req.CustomerSpocPhone
	}
	if req.RevenueARR != nil {
		deal.RevenueARR = *req.RevenueARR
	}
	if req.RevenueActual != nil {
		deal.RevenueActual = req.RevenueActual
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return Deal{}, ErrInvalidStatus{Status: *req.Status}
		}
		deal.Status = *req.Status
	}
	if req.Comments != nil {
		deal.Comments = *req.Comments
	}

	return s.repo.UpdateDeal(ctx, deal)
}

// DeleteDeal removes a deal.
func (s *DealService) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDeal(ctx, id)
}
