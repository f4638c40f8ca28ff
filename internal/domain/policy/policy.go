// Package policy holds the static role-to-permission rules of the platform.
//
// The decision rule is: an admin may do anything; an owner may create stores
// and mutate only stores they own; a regular user may mutate only their own
// ratings. Every switch here is exhaustive over the closed role set, so an
// unrecognized role denies instead of silently falling through.
package policy

import "ratehub/internal/domain/entity"

// CanCreateStore reports whether the role may register new stores.
func CanCreateStore(role entity.Role) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleOwner:
		return true
	case entity.RoleUser:
		return false
	default:
		return false
	}
}

// CanManageStore reports whether the actor may update or delete a store.
// ownsStore is whether the store's owner reference points at the actor.
func CanManageStore(role entity.Role, ownsStore bool) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleOwner:
		return ownsStore
	case entity.RoleUser:
		return false
	default:
		return false
	}
}

// CanRateStore reports whether the actor may submit a rating for a store.
// Owners may rate stores, but never their own.
func CanRateStore(role entity.Role, ownsStore bool) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleOwner, entity.RoleUser:
		return !ownsStore
	default:
		return false
	}
}

// CanDeleteRating reports whether the actor may delete a rating.
// isAuthor is whether the rating was written by the actor.
func CanDeleteRating(role entity.Role, isAuthor bool) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleOwner, entity.RoleUser:
		return isAuthor
	default:
		return false
	}
}

// CanManageUsers reports whether the role may list, create and delete accounts.
func CanManageUsers(role entity.Role) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleOwner, entity.RoleUser:
		return false
	default:
		return false
	}
}
