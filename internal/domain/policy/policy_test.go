package policy

import (
	"testing"

	"ratehub/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanCreateStore(t *testing.T) {
	tests := []struct {
		name string
		role entity.Role
		want bool
	}{
		{"admin may create", entity.RoleAdmin, true},
		{"owner may create", entity.RoleOwner, true},
		{"user may not create", entity.RoleUser, false},
		{"unknown role denied", entity.Role("superuser"), false},
		{"empty role denied", entity.Role(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreateStore(tt.role))
		})
	}
}

func TestCanManageStore(t *testing.T) {
	tests := []struct {
		name      string
		role      entity.Role
		ownsStore bool
		want      bool
	}{
		{"admin manages any store", entity.RoleAdmin, false, true},
		{"owner manages own store", entity.RoleOwner, true, true},
		{"owner cannot manage others' store", entity.RoleOwner, false, false},
		{"user cannot manage own store either", entity.RoleUser, true, false},
		{"unknown role denied even when owning", entity.Role("root"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageStore(tt.role, tt.ownsStore))
		})
	}
}

func TestCanRateStore(t *testing.T) {
	tests := []struct {
		name      string
		role      entity.Role
		ownsStore bool
		want      bool
	}{
		{"user rates any store", entity.RoleUser, false, true},
		{"owner rates others' stores", entity.RoleOwner, false, true},
		{"owner cannot rate own store", entity.RoleOwner, true, false},
		{"admin cannot rate own store", entity.RoleAdmin, true, false},
		{"unknown role denied", entity.Role("guest"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRateStore(tt.role, tt.ownsStore))
		})
	}
}

func TestCanDeleteRating(t *testing.T) {
	tests := []struct {
		name     string
		role     entity.Role
		isAuthor bool
		want     bool
	}{
		{"admin deletes any rating", entity.RoleAdmin, false, true},
		{"author deletes own rating", entity.RoleUser, true, true},
		{"user cannot delete others' rating", entity.RoleUser, false, false},
		{"owner cannot delete others' rating", entity.RoleOwner, false, false},
		{"unknown role denied", entity.Role(""), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeleteRating(tt.role, tt.isAuthor))
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(entity.RoleAdmin))
	assert.False(t, CanManageUsers(entity.RoleOwner))
	assert.False(t, CanManageUsers(entity.RoleUser))
	assert.False(t, CanManageUsers(entity.Role("moderator")))
}
