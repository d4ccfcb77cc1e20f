// Package login implements email/password authentication and access token
// issuance for the portal.
package login
