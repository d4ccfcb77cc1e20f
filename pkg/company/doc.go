// Package company manages partner companies for the portal.
//
// It provides company lifecycle management (CRUD with uniqueness checks on
// name, SPOC email, contact email and website), keeps the account-manager
// assignment table in sync when a company's PAM changes, and implements the
// company-listing collaborator consumed by pkg/rbac for Portal Administrator
// scope resolution.
//
// Storage follows the repository pattern with a PostgreSQL implementation
// and an in-memory implementation for tests.
package company
