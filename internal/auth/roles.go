package auth

import "jobmarket_backend/internal/models"

// HasRole reports whether role is one of allowed.
func HasRole(role models.UserRole, allowed ...models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// OwnsResource is the ownership rule shared by profile, job and video routes:
// the resource must be bound to an account and that account must be the caller.
func OwnsResource(ownerID *string, callerID string) bool {
	return ownerID != nil && callerID != "" && *ownerID == callerID
}
