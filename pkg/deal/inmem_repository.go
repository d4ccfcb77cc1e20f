package deal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryDealRepository implements DealRepository using in-memory storage.
type InMemoryDealRepository struct {
	mu    sync.RWMutex
	deals map[uuid.UUID]Deal
}

// NewInMemoryDealRepository creates a new in-memory deal repository.
func NewInMemoryDealRepository() *InMemoryDealRepository {
	return &InMemoryDealRepository{
		deals: make(map[uuid.UUID]Deal),
	}
}

// CreateDeal inserts a new deal.
func (r *InMemoryDealRepository) CreateDeal(ctx context.Context, deal Deal) (Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	deal.ID = uuid.New()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	r.deals[deal.ID] = deal
	return deal, nil
}

// GetDeal retrieves a deal by id.
func (r *InMemoryDealRepository) GetDeal(ctx context.Context, id uuid.UUID) (Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deal, ok := r.deals[id]
	if !ok {
		return Deal{}, ErrDealNotFound
	}
	return deal, nil
}

// ListDeals retrieves all deals ordered by creation time.
func (r *InMemoryDealRepository) ListDeals(ctx context.Context) ([]Deal, error) {
	return r.listWhere(func(Deal) bool { return true })
}

// ListDealsByStatuses retrieves deals in any of the given statuses.
func (r *InMemoryDealRepository) ListDealsByStatuses(ctx context.Context, statuses []Status) ([]Deal, error) {
	return r.listWhere(func(d Deal) bool {
		for _, s := range statuses {
			if d.Status == s {
				return true
			}
		}
		return false
	})
}

func (r *InMemoryDealRepository) listWhere(match func(Deal) bool) ([]Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var deals []Deal
	for _, deal := range r.deals {
		if match(deal) {
			deals = append(deals, deal)
		}
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].CreatedAt.Before(deals[j].CreatedAt)
	})
	return deals, nil
}

// UpdateDeal stores the full deal row.
func (r *InMemoryDealRepository) UpdateDeal(ctx context.Context, deal Deal) (Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.deals[deal.ID]
	if !ok {
		return Deal{}, ErrDealNotFound
	}
	deal.CreatedAt = existing.CreatedAt
	deal.UpdatedAt = time.Now().UTC()
	r.deals[deal.ID] = deal
	return deal, nil
}

// DeleteDeal removes a deal by id.
func (r *InMemoryDealRepository) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[id]; !ok {
		return ErrDealNotFound
	}
	delete(r.deals, id)
	return nil
}
