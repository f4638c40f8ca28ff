package usecase

import (
	"context"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role may be USER or OWNER; admin accounts are created through the admin API.
type RegisterInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the raw refresh token of the session being closed.
type LogoutInput struct {
	RefreshToken string
}

// UpdatePasswordInput defines the data required to change a password.
type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// AuthOutput returns the token pair and user summary after registration or login.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// TokenPairOutput returns a fresh token pair after a refresh.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, input *UpdatePasswordInput) error
}
