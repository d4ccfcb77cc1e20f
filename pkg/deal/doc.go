// Package deal manages partner deal registrations: creation, status
// lifecycle (Open, In Progress, Won, Lost), archival of closed deals and
// company-scoped visibility through pkg/rbac.
package deal
