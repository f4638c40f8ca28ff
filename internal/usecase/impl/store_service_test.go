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

func newStoreServiceForTest() (usecase.StoreUsecase, *mockStoreRepository, *mockRatingRepository, *mockUserRepository) {
	storeRepo := &mockStoreRepository{}
	ratingRepo := &mockRatingRepository{}
	userRepo := &mockUserRepository{}
	factory := &stubRepoFactory{stores: storeRepo, ratings: ratingRepo, users: userRepo}

	service := NewStoreService(StoreServiceParams{
		TxManager:  &stubTxManager{factory: factory},
		StoreRepo:  storeRepo,
		RatingRepo: ratingRepo,
		UserRepo:   userRepo,
		Logger:     newDiscardLogger(),
	})

	return service, storeRepo, ratingRepo, userRepo
}

func TestStoreService_ListStores_AnonymousCallerGetsNoOwnScores(t *testing.T) {
	service, storeRepo, ratingRepo, _ := newStoreServiceForTest()

	ctx := context.Background()
	stores := []*entity.Store{{ID: uuid.New(), Name: "Corner Grocery"}}
	storeRepo.On("Search", ctx, "").Return(stores, nil)

	views, err := service.ListStores(ctx, &usecase.ListStoresInput{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].MyScore)
	ratingRepo.AssertNotCalled(t, "ScoresByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreService_ListStores_MergesCallerScores(t *testing.T) {
	service, storeRepo, ratingRepo, _ := newStoreServiceForTest()

	ctx := context.Background()
	ratedID := uuid.New()
	unratedID := uuid.New()
	caller := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	stores := []*entity.Store{
		{ID: ratedID, Name: "Rated Bakery"},
		{ID: unratedID, Name: "Unrated Bakery"},
	}

	storeRepo.On("Search", ctx, "bakery").Return(stores, nil)
	ratingRepo.On("ScoresByUser", ctx, caller.ID, []uuid.UUID{ratedID, unratedID}).
		Return(map[uuid.UUID]int{ratedID: 4}, nil)

	views, err := service.ListStores(ctx, &usecase.ListStoresInput{Search: "bakery", Caller: caller})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].MyScore)
	assert.Equal(t, 4, *views[0].MyScore)
	assert.Nil(t, views[1].MyScore)
}

func TestStoreService_GetStore_NotFound(t *testing.T) {
	service, storeRepo, _, _ := newStoreServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	storeRepo.On("FindByID", ctx, storeID).Return(nil, repository.ErrStoreNotFound)

	_, err := service.GetStore(ctx, storeID, nil)
	require.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_GetStore_IncludesCallerScore(t *testing.T) {
	service, storeRepo, ratingRepo, _ := newStoreServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	caller := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID}, nil)
	ratingRepo.On("FindByStoreAndUser", ctx, storeID, caller.ID).
		Return(&entity.Rating{StoreID: storeID, UserID: caller.ID, Score: 2}, nil)

	view, err := service.GetStore(ctx, storeID, caller)
	require.NoError(t, err)
	require.NotNil(t, view.MyScore)
	assert.Equal(t, 2, *view.MyScore)
}

func TestStoreService_MyStores_RequiresOwnerRole(t *testing.T) {
	service, _, _, _ := newStoreServiceForTest()

	_, err := service.MyStores(context.Background(), &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestStoreService_CreateStore_OwnerAlwaysOwnsOwnStore(t *testing.T) {
	service, storeRepo, _, userRepo := newStoreServiceForTest()

	ctx := context.Background()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleOwner}

	storeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Store")).Return(nil)

	store, err := service.CreateStore(ctx, &usecase.CreateStoreInput{
		Actor:    actor,
		Name:     "Neighborhood Hardware Store",
		Category: "hardware",
		Address:  "12 Main Street",
	})
	require.NoError(t, err)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, actor.ID, *store.OwnerID)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestStoreService_CreateStore_AdminAssignsExistingOwner(t *testing.T) {
	service, storeRepo, _, userRepo := newStoreServiceForTest()

	ctx := context.Background()
	ownerID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	userRepo.On("FindByID", ctx, ownerID).Return(&entity.User{ID: ownerID, Role: entity.RoleOwner}, nil)
	storeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Store")).Return(nil)

	store, err := service.CreateStore(ctx, &usecase.CreateStoreInput{
		Actor:   actor,
		Name:    "Admin Registered Coffee House",
		OwnerID: &ownerID,
	})
	require.NoError(t, err)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, ownerID, *store.OwnerID)
}

func TestStoreService_CreateStore_AssignedOwnerMustHaveOwnerRole(t *testing.T) {
	service, storeRepo, _, userRepo := newStoreServiceForTest()

	ctx := context.Background()
	ownerID := uuid.New()

	userRepo.On("FindByID", ctx, ownerID).Return(&entity.User{ID: ownerID, Role: entity.RoleUser}, nil)

	_, err := service.CreateStore(ctx, &usecase.CreateStoreInput{
		Actor:   &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin},
		Name:    "Misassigned Store",
		OwnerID: &ownerID,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	storeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStoreService_CreateStore_RegularUserForbidden(t *testing.T) {
	service, storeRepo, _, _ := newStoreServiceForTest()

	_, err := service.CreateStore(context.Background(), &usecase.CreateStoreInput{
		Actor: &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser},
		Name:  "Not Allowed",
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	storeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStoreService_UpdateStore_OwnerCannotTouchForeignStore(t *testing.T) {
	service, storeRepo, _, _ := newStoreServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	otherOwner := uuid.New()

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID, OwnerID: &otherOwner}, nil)

	_, err := service.UpdateStore(ctx, &usecase.UpdateStoreInput{
		Actor:   &usecase.Actor{ID: uuid.New(), Role: entity.RoleOwner},
		StoreID: storeID,
		Name:    "Renamed",
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	storeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStoreService_DeleteStore_CascadesRatings(t *testing.T) {
	service, storeRepo, ratingRepo, _ := newStoreServiceForTest()

	ctx := context.Background()
	storeID := uuid.New()
	ownerID := uuid.New()

	storeRepo.On("FindByID", ctx, storeID).Return(&entity.Store{ID: storeID, OwnerID: &ownerID}, nil)
	ratingRepo.On("DeleteByStore", ctx, storeID).Return(nil)
	storeRepo.On("Delete", ctx, storeID).Return(nil)

	err := service.DeleteStore(ctx, storeID, &usecase.Actor{ID: ownerID, Role: entity.RoleOwner})
	require.NoError(t, err)
	ratingRepo.AssertExpectations(t)
	storeRepo.AssertExpectations(t)
}
