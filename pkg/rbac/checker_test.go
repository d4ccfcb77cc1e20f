package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompanyLister returns a fixed set of company ids
type fakeCompanyLister struct {
	ids []uuid.UUID
}

func (f *fakeCompanyLister) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.ids, nil
}

type scopedItem struct {
	companyID uuid.UUID
}

func (s scopedItem) GetCompanyID() uuid.UUID {
	return s.companyID
}

func newTestChecker(companyIDs ...uuid.UUID) *Checker {
	return NewChecker(&fakeCompanyLister{ids: companyIDs})
}

func adminUser() *AuthUser {
	return &AuthUser{ID: uuid.New(), Role: RolePortalAdmin}
}

func pamUser(assigned ...uuid.UUID) *AuthUser {
	return &AuthUser{ID: uuid.New(), Role: RolePartnerAccountManager, AssignedCompanyIDs: assigned}
}

func partnerUser(role Role, companyID uuid.UUID) *AuthUser {
	return &AuthUser{ID: uuid.New(), Role: role, CompanyID: &companyID}
}

func TestCanAccessSectionAdminOverride(t *testing.T) {
	checker := newTestChecker()
	admin := adminUser()

	sections := []Section{
		SectionUsers, SectionCompanies, SectionDeals, SectionAnalytics,
		SectionTargets, SectionPayouts, SectionDashboard,
	}
	for _, section := range sections {
		assert.True(t, checker.CanAccessSection(admin, section), "admin denied section %s", section)
	}

	// Admin passes even for names not in the table
	assert.True(t, checker.CanAccessSection(admin, Section("billing")))
	assert.True(t, checker.CanAccessSection(admin, Section("")))
}

func TestCanAccessSectionTable(t *testing.T) {
	checker := newTestChecker()

	tests := []struct {
		role    Role
		section Section
		want    bool
	}{
		{RolePartnerAccountManager, SectionCompanies, true},
		{RolePartnerAccountManager, SectionUsers, false},
		{RolePartnerAccountManager, SectionPayouts, true},
		{RolePartnerSpocAdmin, SectionDeals, true},
		{RolePartnerSpocAdmin, SectionAnalytics, true},
		{RolePartnerSpocAdmin, SectionPayouts, false},
		{RolePartnerSpocAdmin, SectionUsers, false},
		{RolePartnerTeamMember, SectionDeals, true},
		{RolePartnerTeamMember, SectionDashboard, true},
		{RolePartnerTeamMember, SectionTargets, false},
		{RoleViewer, SectionDeals, false},
		{RoleViewer, SectionDashboard, false},
	}

	for _, tt := range tests {
		user := &AuthUser{ID: uuid.New(), Role: tt.role}
		got := checker.CanAccessSection(user, tt.section)
		assert.Equal(t, tt.want, got, "role %s section %s", tt.role, tt.section)
	}
}

func TestCanAccessSectionFailsClosed(t *testing.T) {
	checker := newTestChecker()

	assert.False(t, checker.CanAccessSection(nil, SectionDeals))
	assert.False(t, checker.CanAccessSection(&AuthUser{Role: RoleUnknown}, SectionDeals))
	assert.False(t, checker.CanAccessSection(&AuthUser{Role: ParseRole("Superuser")}, SectionDeals))

	user := &AuthUser{ID: uuid.New(), Role: RolePartnerAccountManager}
	assert.False(t, checker.CanAccessSection(user, Section("nonexistent")))
}

func TestAccessibleCompanyIDsAdmin(t *testing.T) {
	company1 := uuid.New()
	company2 := uuid.New()
	checker := newTestChecker(company1, company2)

	ids, err := checker.AccessibleCompanyIDs(context.Background(), adminUser())
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{company1, company2}, ids)
}

func TestAccessibleCompanyIDsAccountManager(t *testing.T) {
	company1 := uuid.New()
	company3 := uuid.New()
	checker := newTestChecker(uuid.New(), uuid.New())

	ids, err := checker.AccessibleCompanyIDs(context.Background(), pamUser(company1, company3))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{company1, company3}, ids)

	// Empty assigned set resolves to an empty scope
	ids, err = checker.AccessibleCompanyIDs(context.Background(), pamUser())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAccessibleCompanyIDsPartnerRoles(t *testing.T) {
	company := uuid.New()
	checker := newTestChecker(uuid.New())

	for _, role := range []Role{RolePartnerSpocAdmin, RolePartnerTeamMember} {
		ids, err := checker.AccessibleCompanyIDs(context.Background(), partnerUser(role, company))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{company}, ids, "role %s", role)

		// Unaffiliated partner user has no scope
		ids, err = checker.AccessibleCompanyIDs(context.Background(), &AuthUser{ID: uuid.New(), Role: role})
		require.NoError(t, err)
		assert.Empty(t, ids, "role %s", role)
	}
}

func TestAccessibleCompanyIDsFailsClosed(t *testing.T) {
	checker := newTestChecker(uuid.New())

	ids, err := checker.AccessibleCompanyIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	viewer := &AuthUser{ID: uuid.New(), Role: RoleViewer}
	ids, err = checker.AccessibleCompanyIDs(context.Background(), viewer)
	require.NoError(t, err)
	assert.Empty(t, ids)

	unknown := &AuthUser{ID: uuid.New(), Role: RoleUnknown}
	ids, err = checker.AccessibleCompanyIDs(context.Background(), unknown)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCapabilityTable(t *testing.T) {
	checker := newTestChecker()

	allRoles := []Role{
		RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin,
		RolePartnerTeamMember, RoleViewer, RoleUnknown,
	}

	tests := []struct {
		name      string
		predicate func(*AuthUser) bool
		allowed   []Role
	}{
		{"CanAddCompany", checker.CanAddCompany, []Role{RolePortalAdmin, RolePartnerAccountManager}},
		{"CanManageUsers", checker.CanManageUsers, []Role{RolePortalAdmin}},
		{"CanAddTargets", checker.CanAddTargets, []Role{RolePortalAdmin}},
		{"CanViewPayouts", checker.CanViewPayouts, []Role{RolePortalAdmin, RolePartnerSpocAdmin}},
		{"CanViewAnalytics", checker.CanViewAnalytics, []Role{RolePortalAdmin, RolePartnerAccountManager, RoleViewer}},
		{"CanAddDeals", checker.CanAddDeals, []Role{RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin, RolePartnerTeamMember}},
		{"CanAssignPAM", checker.CanAssignPAM, []Role{RolePortalAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := make(map[Role]bool)
			for _, role := range tt.allowed {
				allowed[role] = true
			}
			for _, role := range allRoles {
				user := &AuthUser{ID: uuid.New(), Role: role}
				assert.Equal(t, allowed[role], tt.predicate(user), "role %q", role)
			}
			assert.False(t, tt.predicate(nil), "nil user must be denied")
		})
	}
}

func TestCanEditCompany(t *testing.T) {
	company1 := uuid.New()
	company2 := uuid.New()
	checker := newTestChecker(company1, company2)

	assert.True(t, checker.CanEditCompany(adminUser(), company1))

	pam := pamUser(company1)
	assert.True(t, checker.CanEditCompany(pam, company1))
	assert.False(t, checker.CanEditCompany(pam, company2))

	spoc := partnerUser(RolePartnerSpocAdmin, company1)
	assert.False(t, checker.CanEditCompany(spoc, company1))

	assert.False(t, checker.CanEditCompany(nil, company1))
}

func TestCanEditDeal(t *testing.T) {
	company5 := uuid.New()
	company6 := uuid.New()
	checker := newTestChecker(company5, company6)

	dealAt5 := scopedItem{companyID: company5}
	dealAt6 := scopedItem{companyID: company6}

	assert.True(t, checker.CanEditDeal(adminUser(), dealAt5))

	pam := pamUser(company5)
	assert.True(t, checker.CanEditDeal(pam, dealAt5))
	assert.False(t, checker.CanEditDeal(pam, dealAt6))

	member := partnerUser(RolePartnerTeamMember, company5)
	assert.True(t, checker.CanEditDeal(member, dealAt5))
	assert.False(t, checker.CanEditDeal(member, dealAt6))

	spoc := partnerUser(RolePartnerSpocAdmin, company5)
	assert.True(t, checker.CanEditDeal(spoc, dealAt5))
	assert.False(t, checker.CanEditDeal(spoc, dealAt6))

	viewer := &AuthUser{ID: uuid.New(), Role: RoleViewer}
	assert.False(t, checker.CanEditDeal(viewer, dealAt5))

	assert.False(t, checker.CanEditDeal(nil, dealAt5))
	assert.False(t, checker.CanEditDeal(adminUser(), nil))
}

func TestFilterByAccess(t *testing.T) {
	company1 := uuid.New()
	company2 := uuid.New()
	company3 := uuid.New()

	items := []scopedItem{
		{companyID: company1},
		{companyID: company2},
		{companyID: company1},
		{companyID: company3},
	}

	t.Run("nil user sees nothing", func(t *testing.T) {
		assert.Empty(t, FilterByAccess(nil, []uuid.UUID{company1}, items))
	})

	t.Run("admin sees input unchanged", func(t *testing.T) {
		got := FilterByAccess(adminUser(), nil, items)
		assert.Equal(t, items, got)
	})

	t.Run("scope subsequence preserves order", func(t *testing.T) {
		user := pamUser(company1, company3)
		got := FilterByAccess(user, []uuid.UUID{company1, company3}, items)
		want := []scopedItem{
			{companyID: company1},
			{companyID: company1},
			{companyID: company3},
		}
		assert.Equal(t, want, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		user := pamUser(company1)
		scope := []uuid.UUID{company1}
		once := FilterByAccess(user, scope, items)
		twice := FilterByAccess(user, scope, once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty scope yields empty result", func(t *testing.T) {
		user := &AuthUser{ID: uuid.New(), Role: RoleViewer}
		assert.Empty(t, FilterByAccess(user, nil, items))
	})
}

func TestViewerScenario(t *testing.T) {
	checker := newTestChecker(uuid.New())
	viewer := &AuthUser{ID: uuid.New(), Role: RoleViewer}

	assert.True(t, checker.CanViewAnalytics(viewer))
	assert.False(t, checker.CanAddDeals(viewer))

	ids, err := checker.AccessibleCompanyIDs(context.Background(), viewer)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
