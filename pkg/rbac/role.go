package rbac

// Role is the closed set of portal roles. Capabilities are enumerated per
// role, not derived from a rank: a SPOC Admin can see payouts while an
// Account Manager cannot, so no total order exists between roles.
type Role string

const (
	RolePortalAdmin           Role = "Portal Administrator"
	RolePartnerAccountManager Role = "Partner Account Manager"
	RolePartnerSpocAdmin      Role = "Partner SPOC Admin"
	RolePartnerTeamMember     Role = "Partner Team Member"
	RoleViewer                Role = "Viewer"

	// RoleUnknown is the normalization target for any role name not in the
	// closed set. It holds no capabilities.
	RoleUnknown Role = ""
)

// ParseRole maps a role name from a token claim or database row to a Role.
// Unrecognized names become RoleUnknown, which fails closed everywhere.
func ParseRole(s string) Role {
	switch Role(s) {
	case RolePortalAdmin, RolePartnerAccountManager, RolePartnerSpocAdmin,
		RolePartnerTeamMember, RoleViewer:
		return Role(s)
	}
	return RoleUnknown
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != RoleUnknown
}

func (r Role) String() string {
	return string(r)
}

// Section names an area of portal functionality gated by the section table.
type Section string

const (
	SectionUsers     Section = "users"
	SectionCompanies Section = "companies"
	SectionDeals     Section = "deals"
	SectionAnalytics Section = "analytics"
	SectionTargets   Section = "targets"
	SectionPayouts   Section = "payouts"
	SectionDashboard Section = "dashboard"
)
