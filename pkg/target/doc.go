// Package target manages revenue and deal-count targets set by portal
// administrators for account managers, companies and SPOCs.
package target
