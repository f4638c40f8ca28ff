package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// Search retrieves stores whose name, category or address matches the
	// given text, case-insensitively. An empty query returns all stores.
	Search(ctx context.Context, query string) ([]*entity.Store, error)

	// FindByOwner retrieves all stores owned by the given user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error)

	// Create persists a new store entity to the storage.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store entity in the storage.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store by ID. Returns ErrStoreNotFound when no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateAggregates writes the cached average rating and rating count for
	// a store. When the store no longer exists this is a no-op: the cache
	// belongs to a row that is already gone.
	UpdateAggregates(ctx context.Context, id uuid.UUID, average float64, count int64) error

	// ReleaseOwner detaches every store owned by the given user, leaving the
	// stores unassigned. Used when an owner account is removed.
	ReleaseOwner(ctx context.Context, ownerID uuid.UUID) error

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)
}
