// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. A user always carries exactly one role;
// the role is fixed at creation time and never changes afterwards.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Name         string    // The user's display name.
	Email        string    // The user's email, used as the login identifier. Unique across the system.
	Address      string    // The user's postal address.
	PasswordHash string    // The bcrypt hash of the user's password. Never serialized to API responses.
	Role         Role      // The user's role: ADMIN, OWNER or USER.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Summary is the safe, public projection of a User for API responses.
type Summary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	Role    Role      `json:"role"`
}

// Summary returns the public projection of the user, stripping the password hash.
func (u *User) Summary() *Summary {
	if u == nil {
		return nil
	}

	return &Summary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    u.Role,
	}
}
