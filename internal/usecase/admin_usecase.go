package usecase

import (
	"context"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateUserInput defines the data for an admin-created account. Unlike
// self-registration, any role including ADMIN is allowed here.
type CreateUserInput struct {
	Actor    *Actor
	Name     string
	Email    string
	Address  string
	Password string
	Role     entity.Role
}

// PlatformStats carries the aggregate counts shown on the admin dashboard.
type PlatformStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// AdminUsecase defines the interface for administrator-only operations.
type AdminUsecase interface {
	ListUsers(ctx context.Context, actor *Actor) ([]*entity.Summary, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID, actor *Actor) error
	Stats(ctx context.Context, actor *Actor) (*PlatformStats, error)
}
