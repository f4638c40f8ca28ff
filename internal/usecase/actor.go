// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a use case, as extracted from
// the access token by the delivery layer.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}
