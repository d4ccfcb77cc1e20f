package rbac

import "fmt"

// ErrBadClaim is returned when a token claim cannot be converted into the
// AuthUser record. The core itself never raises it for authorization
// decisions; it only surfaces during claim parsing in the middleware.
type ErrBadClaim struct {
	Claim string
	Value string
}

func (e *ErrBadClaim) Error() string {
	return fmt.Sprintf("invalid %s claim: %q", e.Claim, e.Value)
}
