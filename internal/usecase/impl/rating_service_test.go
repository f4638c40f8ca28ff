package impl

import (
	"context"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRatingServiceForTest() (usecase.RatingUsecase, *mockStoreRepository, *mockRatingRepository) {
	storeRepo := &mockStoreRepository{}
	ratingRepo := &mockRatingRepository{}
	factory := &stubRepoFactory{stores: storeRepo, ratings: ratingRepo}

	service := NewRatingService(RatingServiceParams{
		TxManager:  &stubTxManager{factory: factory},
		StoreRepo:  storeRepo,
		RatingRepo: ratingRepo,
		Logger:     newDiscardLogger(),
	})

	return service, storeRepo, ratingRepo
}

func TestRatingService_SubmitRating_CreatesNewRating(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID}, nil)
	ratingRepo.On("FindByStoreAndUser", ctx, storeID, actor.ID).Return(nil, repository.ErrRatingNotFound)
	ratingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)
	ratingRepo.On("AggregateByStore", ctx, storeID).Return(4.0, int64(1), nil)
	storeRepo.On("UpdateAggregates", ctx, storeID, 4.0, int64(1)).Return(nil)

	output, err := service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		Actor:   actor,
		StoreID: storeID,
		Score:   4,
		Comment: "solid",
	})
	require.NoError(t, err)
	assert.True(t, output.Created)
	assert.Equal(t, 4, output.Rating.Score)
	assert.Equal(t, actor.ID, output.Rating.UserID)
	storeRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestRatingService_SubmitRating_ReplacesExistingRating(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	existing := &entity.Rating{ID: uuid.New(), StoreID: storeID, UserID: actor.ID, Score: 2}

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID}, nil)
	ratingRepo.On("FindByStoreAndUser", ctx, storeID, actor.ID).Return(existing, nil)
	ratingRepo.On("Update", ctx, existing).Return(nil)
	ratingRepo.On("AggregateByStore", ctx, storeID).Return(5.0, int64(1), nil)
	storeRepo.On("UpdateAggregates", ctx, storeID, 5.0, int64(1)).Return(nil)

	output, err := service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		Actor:   actor,
		StoreID: storeID,
		Score:   5,
	})
	require.NoError(t, err)
	assert.False(t, output.Created)
	assert.Equal(t, 5, output.Rating.Score)
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_DuplicateInsertFallsBackToUpdate(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	winner := &entity.Rating{ID: uuid.New(), StoreID: storeID, UserID: actor.ID, Score: 1}

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID}, nil)
	ratingRepo.On("FindByStoreAndUser", ctx, storeID, actor.ID).Return(nil, repository.ErrRatingNotFound).Once()
	ratingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).Return(repository.ErrDuplicateRating)
	ratingRepo.On("FindByStoreAndUser", ctx, storeID, actor.ID).Return(winner, nil).Once()
	ratingRepo.On("Update", ctx, winner).Return(nil)
	ratingRepo.On("AggregateByStore", ctx, storeID).Return(3.0, int64(1), nil)
	storeRepo.On("UpdateAggregates", ctx, storeID, 3.0, int64(1)).Return(nil)

	output, err := service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		Actor:   actor,
		StoreID: storeID,
		Score:   3,
	})
	require.NoError(t, err)
	assert.False(t, output.Created)
	assert.Equal(t, 3, output.Rating.Score)
}

func TestRatingService_SubmitRating_RejectsScoreOutOfRange(t *testing.T) {
	service, storeRepo, _ := newRatingServiceForTest()

	_, err := service.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		Actor:   &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser},
		StoreID: uuid.New(),
		Score:   6,
	})
	require.ErrorIs(t, err, domainerrors.ErrScoreOutOfRange)
	storeRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_OwnerCannotRateOwnStore(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleOwner}
	ownerID := actor.ID

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID, OwnerID: &ownerID}, nil)

	_, err := service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		Actor:   actor,
		StoreID: storeID,
		Score:   5,
	})
	require.ErrorIs(t, err, domainerrors.ErrOwnStoreRating)
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_StoreNotFound(t *testing.T) {
	service, storeRepo, _ := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	storeRepo.On("FindByID", ctx, storeID).Return(nil, repository.ErrStoreNotFound)

	_, err := service.SubmitRating(ctx, &usecase.SubmitRatingInput{
		Actor:   &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser},
		StoreID: storeID,
		Score:   3,
	})
	require.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_DeleteRating_AuthorDeletesAndAggregatesRecompute(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	ratingID := uuid.New()
	storeID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	ratingRepo.On("FindByID", ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, StoreID: storeID, UserID: actor.ID, Score: 4}, nil)
	ratingRepo.On("Delete", ctx, ratingID).Return(nil)
	ratingRepo.On("AggregateByStore", ctx, storeID).Return(0.0, int64(0), nil)
	storeRepo.On("UpdateAggregates", ctx, storeID, 0.0, int64(0)).Return(nil)

	err := service.DeleteRating(ctx, ratingID, actor)
	require.NoError(t, err)
	storeRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestRatingService_DeleteRating_ForbiddenForOtherUsers(t *testing.T) {
	service, _, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	ratingID := uuid.New()

	ratingRepo.On("FindByID", ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, StoreID: uuid.New(), UserID: uuid.New(), Score: 4}, nil)

	err := service.DeleteRating(ctx, ratingID, &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	ratingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRatingService_DeleteRating_AdminDeletesAnyRating(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	ratingID := uuid.New()
	storeID := uuid.New()

	ratingRepo.On("FindByID", ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, StoreID: storeID, UserID: uuid.New(), Score: 2}, nil)
	ratingRepo.On("Delete", ctx, ratingID).Return(nil)
	ratingRepo.On("AggregateByStore", ctx, storeID).Return(4.5, int64(2), nil)
	storeRepo.On("UpdateAggregates", ctx, storeID, 4.5, int64(2)).Return(nil)

	err := service.DeleteRating(ctx, ratingID, &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin})
	require.NoError(t, err)
}

func TestRatingService_StoreRatings_UnknownStore(t *testing.T) {
	service, storeRepo, _ := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	storeRepo.On("FindByID", ctx, storeID).Return(nil, repository.ErrStoreNotFound)

	_, err := service.StoreRatings(ctx, storeID)
	require.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_StoreRatings_ReturnsLedger(t *testing.T) {
	service, storeRepo, ratingRepo := newRatingServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	ledger := []*entity.Rating{
		{ID: uuid.New(), StoreID: storeID, Score: 5, RaterName: "Newest Reviewer Display Name"},
		{ID: uuid.New(), StoreID: storeID, Score: 3, RaterName: "Older Reviewer Display Name"},
	}

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID}, nil)
	ratingRepo.On("ListByStore", ctx, storeID).Return(ledger, nil)

	ratings, err := service.StoreRatings(ctx, storeID)
	require.NoError(t, err)
	assert.Equal(t, ledger, ratings)
}
