package usecase

import (
	"context"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListStoresInput defines the parameters for browsing the store registry.
// Caller is nil for anonymous listings.
type ListStoresInput struct {
	Search string
	Caller *Actor
}

// CreateStoreInput defines the data required to register a new store.
// OwnerID is honored only for admins; owners always become the owner themselves.
type CreateStoreInput struct {
	Actor       *Actor
	Name        string
	Category    string
	Address     string
	Description string
	OwnerID     *uuid.UUID
}

// UpdateStoreInput defines the updatable fields of a store.
type UpdateStoreInput struct {
	Actor       *Actor
	StoreID     uuid.UUID
	Name        string
	Category    string
	Address     string
	Description string
}

// --- Output DTOs ---

// StoreView is a store together with the calling user's own score for it.
// MyScore is nil for anonymous callers and for stores the caller has not rated.
type StoreView struct {
	Store   *entity.Store
	MyScore *int
}

// StoreUsecase defines the interface for store registry operations.
type StoreUsecase interface {
	ListStores(ctx context.Context, input *ListStoresInput) ([]*StoreView, error)
	GetStore(ctx context.Context, storeID uuid.UUID, caller *Actor) (*StoreView, error)
	MyStores(ctx context.Context, actor *Actor) ([]*entity.Store, error)
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)
	UpdateStore(ctx context.Context, input *UpdateStoreInput) (*entity.Store, error)
	DeleteStore(ctx context.Context, storeID uuid.UUID, actor *Actor) error
}
