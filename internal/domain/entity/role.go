// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "ADMIN"
	// RoleOwner indicates a store owner.
	RoleOwner Role = "OWNER"
	// RoleUser indicates a regular user.
	RoleUser Role = "USER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	default:
		return false
	}
}

// CanOwnStores reports whether users with this role may hold store ownership.
func (r Role) CanOwnStores() bool {
	switch r {
	case RoleAdmin, RoleOwner:
		return true
	case RoleUser:
		return false
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

// RoleFromString converts a string to a Role, reporting whether it is one of
// the known role values. Unrecognized strings never silently map to a role.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
