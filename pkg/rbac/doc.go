// Package rbac provides role-based access control for the partner portal.
//
// The package answers three kinds of questions for an authenticated user:
//
//   - section access: may this user enter a named area of the portal
//     (users, companies, deals, analytics, targets, payouts, dashboard)?
//   - capabilities: may this user perform a specific action (add a company,
//     manage users, view payouts, edit a given deal, ...)?
//   - scope: which company ids may this user act on, and which rows of a
//     company-scoped collection may this user see?
//
// All decisions fail closed: a nil user, an unknown role or an unknown
// section name yields "no access" rather than an error.
//
// # Basic Usage
//
//	checker := rbac.NewChecker(companyRepo)
//
//	if !checker.CanAccessSection(user, rbac.SectionDeals) {
//		// respond 403
//	}
//
//	scope, err := checker.AccessibleCompanyIDs(ctx, user)
//	visible := rbac.FilterByAccess(user, scope, deals)
//
// The Checker owns an immutable section table built at construction time.
// Database access is limited to the company-listing collaborator used for
// the Portal Administrator scope; every predicate and the collection filter
// are pure functions.
//
// # Related Packages
//
//   - pkg/login - authentication, builds the AuthUser this package consumes
//   - pkg/company - implements the CompanyLister collaborator
package rbac
