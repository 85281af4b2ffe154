// Package policy holds the role and ownership predicates applied to an
// authenticated account.
package policy

import "github.com/zahid-akhtar7979/wildlife-api/models"

func IsAdmin(user *models.AuthUser) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// IsContributorOrAbove reports whether the account may author content.
func IsContributorOrAbove(user *models.AuthUser) bool {
	return user != nil && (user.Role == models.RoleAdmin || user.Role == models.RoleContributor)
}

// OwnsOrAdmin reports whether user owns the resource or administers the site.
func OwnsOrAdmin(user *models.AuthUser, ownerID uint) bool {
	return IsAdmin(user) || (user != nil && user.ID == ownerID)
}

// Authorize returns a Forbidden error when allowed is false.
func Authorize(allowed bool, message string) error {
	if allowed {
		return nil
	}
	return models.ErrorForbidden{Message: message}
}
