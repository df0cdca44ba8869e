// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleBuyer indicates a buyer who purchases goods on store credit.
	RoleBuyer Role = "BUYER"
	// RoleSeller indicates a seller who lists products and fulfils orders.
	RoleSeller Role = "SELLER"
	// RoleAdmin indicates an administrator who manages users and credit terms.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// RoleFromString converts a string to a Role, returning false for unknown values.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}

// Principal is the authenticated caller of a use case. Identity issuance and
// credential checks live outside this service; every operation receives the
// principal explicitly instead of reading it from ambient request state.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// CanPurchase reports whether the principal may buy goods on credit.
func (p Principal) CanPurchase() bool {
	return p.Role == RoleBuyer
}

// CanSell reports whether the principal may manage and fulfil orders as a seller.
func (p Principal) CanSell() bool {
	return p.Role == RoleSeller
}

// IsAdmin reports whether the principal has administrative privileges.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
