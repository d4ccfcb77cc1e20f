// Package portaluser manages portal user accounts and the many-to-many
// assignment of Partner Account Managers to companies.
//
// User management (create, update, delete, bcrypt password handling) is
// restricted to Portal Administrators through pkg/rbac. The assignment table
// maintained here is the authoritative source for an account manager's
// company scope; pkg/login reads it when minting token claims and
// pkg/company syncs it when a company's PAM changes.
package portaluser
