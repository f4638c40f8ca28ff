package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no refresh token matches the lookup.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the operations for persisted login sessions.
// Only SHA-256 hashes of refresh tokens are ever stored.
type RefreshTokenRepository interface {
	// FindByTokenHash retrieves a refresh token record by its hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// DeleteByTokenHash removes a refresh token record by its hash.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUser removes every session belonging to the given user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
