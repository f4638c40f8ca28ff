package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is a domain-specific error returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// ErrDuplicateRating is returned when an insert collides with the
// (store_id, user_id) uniqueness constraint. Callers treat this as
// "update the existing row instead".
var ErrDuplicateRating = errors.New("rating already exists for this store and user")

// RatingRepository defines the standard operations for the rating ledger.
type RatingRepository interface {
	// FindByID retrieves a single rating by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)

	// FindByStoreAndUser retrieves the single rating for a (store, user) pair.
	FindByStoreAndUser(ctx context.Context, storeID, userID uuid.UUID) (*entity.Rating, error)

	// ListByStore retrieves all ratings for a store, newest first, with the
	// author's display name filled in on each entry.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)

	// Create persists a new rating. Returns ErrDuplicateRating when the
	// (store, user) pair already has one.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update modifies an existing rating's score and comment.
	Update(ctx context.Context, rating *entity.Rating) error

	// Delete removes a rating by ID. Returns ErrRatingNotFound when no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByStore removes every rating referencing the given store.
	DeleteByStore(ctx context.Context, storeID uuid.UUID) error

	// DeleteByUser removes every rating authored by the given user and
	// returns the IDs of the stores that were affected.
	DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// AggregateByStore re-reads the full ledger for a store and returns the
	// average score and the count. Returns 0, 0 for an empty ledger.
	AggregateByStore(ctx context.Context, storeID uuid.UUID) (average float64, count int64, err error)

	// ScoresByUser returns the given user's score per store, keyed by store
	// ID, for the listed stores. Stores the user has not rated are absent.
	ScoresByUser(ctx context.Context, userID uuid.UUID, storeIDs []uuid.UUID) (map[uuid.UUID]int, error)

	// Count returns the total number of ratings.
	Count(ctx context.Context) (int64, error)
}
