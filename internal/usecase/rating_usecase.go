package usecase

import (
	"context"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitRatingInput defines the data for rating a store. Submitting a second
// rating for the same store updates the first one (upsert semantics).
type SubmitRatingInput struct {
	Actor   *Actor
	StoreID uuid.UUID
	Score   int
	Comment string
}

// SubmitRatingOutput returns the persisted rating and whether it was newly created.
type SubmitRatingOutput struct {
	Rating  *entity.Rating
	Created bool
}

// RatingUsecase defines the interface for the rating ledger operations.
type RatingUsecase interface {
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*SubmitRatingOutput, error)
	DeleteRating(ctx context.Context, ratingID uuid.UUID, actor *Actor) error
	StoreRatings(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)
}
