package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/policy"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for ratingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:  params.TxManager,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating records or replaces the caller's rating for a store and
// recomputes the store's cached aggregates in the same transaction.
func (srv *ratingService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	if !entity.ValidScore(input.Score) {
		return nil, domainerrors.ErrScoreOutOfRange
	}

	var result usecase.SubmitRatingOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		store, err := storeRepo.FindByID(ctx, input.StoreID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound
			}

			return errors.Wrap(err, "failed to load store for rating")
		}

		if !policy.CanRateStore(input.Actor.Role, store.OwnedBy(input.Actor.ID)) {
			if store.OwnedBy(input.Actor.ID) {
				return domainerrors.ErrOwnStoreRating
			}

			return domainerrors.ErrForbidden.WrapMessage("role cannot rate stores")
		}

		rating, created, err := srv.upsertRating(ctx, ratingRepo, input)
		if err != nil {
			return err
		}

		average, count, err := ratingRepo.AggregateByStore(ctx, input.StoreID)
		if err != nil {
			return errors.Wrap(err, "failed to recompute store aggregates")
		}
		if err := storeRepo.UpdateAggregates(ctx, input.StoreID, average, count); err != nil {
			return errors.Wrap(err, "failed to persist store aggregates")
		}

		result = usecase.SubmitRatingOutput{Rating: rating, Created: created}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to submit rating", slog.Any("storeID", input.StoreID), slog.Any("userID", input.Actor.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Rating submitted",
		slog.Any("storeID", input.StoreID),
		slog.Any("userID", input.Actor.ID),
		slog.Int("score", input.Score),
		slog.Bool("created", result.Created))

	return &result, nil
}

// upsertRating inserts the caller's rating, falling back to an update when the
// (store, user) pair already has one. The unique index keeps concurrent first
// submissions from producing two rows.
func (srv *ratingService) upsertRating(
	ctx context.Context,
	ratingRepo repository.RatingRepository,
	input *usecase.SubmitRatingInput,
) (*entity.Rating, bool, error) {
	existing, err := ratingRepo.FindByStoreAndUser(ctx, input.StoreID, input.Actor.ID)
	if err != nil && !errors.Is(err, repository.ErrRatingNotFound) {
		return nil, false, errors.Wrap(err, "failed to look up existing rating")
	}

	if existing != nil {
		existing.Score = input.Score
		existing.Comment = input.Comment
		if err := ratingRepo.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap(err, "failed to update rating")
		}

		return existing, false, nil
	}

	rating := &entity.Rating{
		StoreID: input.StoreID,
		UserID:  input.Actor.ID,
		Score:   input.Score,
		Comment: input.Comment,
	}
	err = ratingRepo.Create(ctx, rating)
	if err == nil {
		return rating, true, nil
	}
	if !errors.Is(err, repository.ErrDuplicateRating) {
		return nil, false, errors.Wrap(err, "failed to create rating")
	}

	// Lost the race against a concurrent first submission, replace that row.
	existing, err = ratingRepo.FindByStoreAndUser(ctx, input.StoreID, input.Actor.ID)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to reload rating after duplicate insert")
	}

	existing.Score = input.Score
	existing.Comment = input.Comment
	if err := ratingRepo.Update(ctx, existing); err != nil {
		return nil, false, errors.Wrap(err, "failed to update rating after duplicate insert")
	}

	return existing, false, nil
}

// DeleteRating removes a rating and recomputes the store's aggregates.
func (srv *ratingService) DeleteRating(ctx context.Context, ratingID uuid.UUID, actor *usecase.Actor) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := ratingRepo.FindByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return domainerrors.ErrRatingNotFound
			}

			return errors.Wrap(err, "failed to load rating for deletion")
		}

		if !policy.CanDeleteRating(actor.Role, rating.UserID == actor.ID) {
			return domainerrors.ErrForbidden.WrapMessage("not allowed to delete this rating")
		}

		if err := ratingRepo.Delete(ctx, ratingID); err != nil {
			return errors.Wrap(err, "failed to delete rating")
		}

		average, count, err := ratingRepo.AggregateByStore(ctx, rating.StoreID)
		if err != nil {
			return errors.Wrap(err, "failed to recompute store aggregates")
		}

		return repoFactory.StoreRepo().UpdateAggregates(ctx, rating.StoreID, average, count)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete rating", slog.Any("ratingID", ratingID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Rating deleted", slog.Any("ratingID", ratingID))

	return nil
}

// StoreRatings lists a store's full rating ledger, newest first.
func (srv *ratingService) StoreRatings(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to load store for rating listing")
	}

	ratings, err := srv.ratingRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return ratings, nil
}
