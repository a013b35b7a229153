// Package auth carries the authenticated principal handed to the workflow
// services. Authentication itself happens upstream; this package only models
// the identity and role set the core consumes.
package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Role is a closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole normalizes a raw role string; unknown values map to RoleCustomer.
func ParseRole(raw string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleCustomer
	}
}

// Principal is the authenticated caller identity.
type Principal struct {
	UserID uuid.UUID
	Roles  []Role
}

// HasElevatedPrivilege reports whether the role set grants cross-user
// authority over orders and payments. A nil or empty role list grants none.
func HasElevatedPrivilege(roles []Role) bool {
	for _, role := range roles {
		if role == RoleAdmin || role == RoleManager {
			return true
		}
	}
	return false
}

// Elevated reports whether the principal holds an admin or manager role.
func (p Principal) Elevated() bool {
	return HasElevatedPrivilege(p.Roles)
}
