package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CompanyLister is the persistence collaborator used to resolve the Portal
// Administrator scope. Implemented by the company repository.
type CompanyLister interface {
	ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CompanyScoped is implemented by entities that carry a company reference
// and can therefore be scope-filtered.
type CompanyScoped interface {
	GetCompanyID() uuid.UUID
}

// Checker evaluates section access, capabilities and company scope for
// authenticated users. The section table is built once at construction and
// never mutated afterwards.
type Checker struct {
	sections  map[Section][]Role
	companies CompanyLister
}

// NewChecker creates a Checker backed by the given company lister.
func NewChecker(companies CompanyLister) *Checker {
	return &Checker{
		sections: map[Section][]Role{
			SectionUsers:     {RolePortalAdmin},
			SectionCompanies: {RolePortalAdmin, RolePartnerAccountManager},
			SectionDeals:     {RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin, RolePartnerTeamMember},
			SectionAnalytics: {RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin},
			SectionTargets:   {RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin},
			SectionPayouts:   {RolePortalAdmin, RolePartnerAccountManager},
			SectionDashboard: {RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin, RolePartnerTeamMember},
		},
		companies: companies,
	}
}

// CanAccessSection reports whether user may enter the named section.
// Portal Administrators may enter every section, including names not in the
// table; for everyone else an unknown section name is denied.
func (c *Checker) CanAccessSection(user *AuthUser, section Section) bool {
	if user == nil {
		return false
	}
	// Admin override, deliberately ahead of the table lookup.
	if user.Role == RolePortalAdmin {
		return true
	}
	for _, role := range c.sections[section] {
		if user.Role == role {
			return true
		}
	}
	return false
}

// AccessibleCompanyIDs computes the set of company ids user may act on.
//
//   - Portal Administrator: every company known to the system
//   - Partner Account Manager: the assigned-company set
//   - Partner SPOC Admin / Team Member: their own company, or none
//   - anyone else: none
func (c *Checker) AccessibleCompanyIDs(ctx context.Context, user *AuthUser) ([]uuid.UUID, error) {
	if user == nil {
		return nil, nil
	}

	switch user.Role {
	case RolePortalAdmin:
		ids, err := c.companies.ListCompanyIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list company ids: %w", err)
		}
		return ids, nil
	case RolePartnerAccountManager:
		return user.AssignedCompanyIDs, nil
	case RolePartnerSpocAdmin, RolePartnerTeamMember:
		if user.CompanyID == nil {
			return nil, nil
		}
		return []uuid.UUID{*user.CompanyID}, nil
	}
	return nil, nil
}

// CanAddCompany reports whether user may create companies.
func (c *Checker) CanAddCompany(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin, RolePartnerAccountManager)
}

// CanManageUsers reports whether user may create, edit or delete portal users.
func (c *Checker) CanManageUsers(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin)
}

// CanAddTargets reports whether user may create revenue targets.
func (c *Checker) CanAddTargets(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin)
}

// CanViewPayouts reports whether user may see payout records.
func (c *Checker) CanViewPayouts(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin, RolePartnerSpocAdmin)
}

// CanViewAnalytics reports whether user may see partner analytics.
func (c *Checker) CanViewAnalytics(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin, RolePartnerAccountManager, RoleViewer)
}

// CanAddDeals reports whether user may register new deals.
func (c *Checker) CanAddDeals(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin, RolePartnerAccountManager,
		RolePartnerSpocAdmin, RolePartnerTeamMember)
}

// CanAssignPAM reports whether user may assign account managers to companies.
func (c *Checker) CanAssignPAM(user *AuthUser) bool {
	return hasRole(user, RolePortalAdmin)
}

// CanEditCompany reports whether user may modify the given company.
func (c *Checker) CanEditCompany(user *AuthUser, companyID uuid.UUID) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case RolePortalAdmin:
		return true
	case RolePartnerAccountManager:
		return assigned(user, companyID)
	}
	return false
}

// CanEditDeal reports whether user may modify the given deal.
func (c *Checker) CanEditDeal(user *AuthUser, deal CompanyScoped) bool {
	if user == nil || deal == nil {
		return false
	}
	switch user.Role {
	case RolePortalAdmin:
		return true
	case RolePartnerAccountManager:
		return assigned(user, deal.GetCompanyID())
	case RolePartnerSpocAdmin, RolePartnerTeamMember:
		return user.CompanyID != nil && *user.CompanyID == deal.GetCompanyID()
	}
	return false
}

// FilterByAccess narrows items to those whose company reference is in scope,
// preserving the original relative order. A nil user sees nothing; a Portal
// Administrator sees the input unchanged. The scope is supplied by the
// caller (normally AccessibleCompanyIDs), keeping the filter free of
// database access.
func FilterByAccess[T CompanyScoped](user *AuthUser, scope []uuid.UUID, items []T) []T {
	if user == nil {
		return []T{}
	}
	if user.Role == RolePortalAdmin {
		return items
	}

	allowed := make(map[uuid.UUID]struct{}, len(scope))
	for _, id := range scope {
		allowed[id] = struct{}{}
	}

	visible := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := allowed[item.GetCompanyID()]; ok {
			visible = append(visible, item)
		}
	}
	return visible
}

func hasRole(user *AuthUser, roles ...Role) bool {
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

func assigned(user *AuthUser, companyID uuid.UUID) bool {
	for _, id := range user.AssignedCompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}
