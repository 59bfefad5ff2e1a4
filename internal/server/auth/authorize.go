package auth

import "github.com/dsantanna/quizdeck/internal/server/models"

// RequiredRole names the two access tiers a protected operation can demand.
type RequiredRole int

const (
	// RoleAny admits every authenticated user.
	RoleAny RequiredRole = iota
	// RoleAdmin admits administrators only.
	RoleAdmin
)

// Authorize reports whether user satisfies required. It is applied at the
// operation boundary before any business logic runs.
func Authorize(user *models.Sanitized, required RequiredRole) bool {
	if user == nil {
		return false
	}
	switch required {
	case RoleAdmin:
		return user.Role == models.RoleAdmin
	default:
		return true
	}
}
