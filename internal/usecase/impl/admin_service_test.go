package impl

import (
	"context"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminServiceMocks struct {
	users         *mockUserRepository
	stores        *mockStoreRepository
	ratings       *mockRatingRepository
	refreshTokens *mockRefreshTokenRepository
	hasher        *mockPasswordHasher
}

func newAdminServiceForTest() (usecase.AdminUsecase, *adminServiceMocks) {
	mocks := &adminServiceMocks{
		users:         &mockUserRepository{},
		stores:        &mockStoreRepository{},
		ratings:       &mockRatingRepository{},
		refreshTokens: &mockRefreshTokenRepository{},
		hasher:        &mockPasswordHasher{},
	}
	factory := &stubRepoFactory{
		users:         mocks.users,
		stores:        mocks.stores,
		ratings:       mocks.ratings,
		refreshTokens: mocks.refreshTokens,
	}

	service := NewAdminService(AdminServiceParams{
		TxManager:  &stubTxManager{factory: factory},
		UserRepo:   mocks.users,
		StoreRepo:  mocks.stores,
		RatingRepo: mocks.ratings,
		Hasher:     mocks.hasher,
		Logger:     newDiscardLogger(),
	})

	return service, mocks
}

func adminActor() *usecase.Actor {
	return &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func TestAdminService_ListUsers_StripsPasswordHashes(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	ctx := context.Background()
	mocks.users.On("List", ctx).Return([]*entity.User{
		{ID: uuid.New(), Name: "First Listed Platform Member", Email: "first@example.com", PasswordHash: "secret-hash", Role: entity.RoleUser},
	}, nil)

	summaries, err := service.ListUsers(ctx, adminActor())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "first@example.com", summaries[0].Email)
}

func TestAdminService_ListUsers_ForbiddenForNonAdmins(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	_, err := service.ListUsers(context.Background(), &usecase.Actor{ID: uuid.New(), Role: entity.RoleOwner})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	mocks.users.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdminService_CreateUser_AdminMayCreateAdmins(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	ctx := context.Background()
	mocks.hasher.On("ValidatePasswordStrength", "Adm1nSecret!").Return(nil)
	mocks.hasher.On("Hash", "Adm1nSecret!").Return("hashed-password", nil)
	mocks.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Actor:    adminActor(),
		Name:     "A Second Platform Administrator",
		Email:    "second-admin@example.com",
		Password: "Adm1nSecret!",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestAdminService_CreateUser_RejectsUnknownRole(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	_, err := service.CreateUser(context.Background(), &usecase.CreateUserInput{
		Actor:    adminActor(),
		Name:     "An Account With A Bad Role",
		Email:    "bad-role@example.com",
		Password: "Adm1nSecret!",
		Role:     entity.Role("SUPERUSER"),
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	mocks.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminService_DeleteUser_CleansUpRatingsStoresAndSessions(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	ctx := context.Background()
	userID := uuid.New()
	affectedStore := uuid.New()

	mocks.users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID, Role: entity.RoleOwner}, nil)
	mocks.ratings.On("DeleteByUser", ctx, userID).Return([]uuid.UUID{affectedStore}, nil)
	mocks.ratings.On("AggregateByStore", ctx, affectedStore).Return(3.5, int64(2), nil)
	mocks.stores.On("UpdateAggregates", ctx, affectedStore, 3.5, int64(2)).Return(nil)
	mocks.stores.On("ReleaseOwner", ctx, userID).Return(nil)
	mocks.refreshTokens.On("DeleteByUser", ctx, userID).Return(nil)
	mocks.users.On("Delete", ctx, userID).Return(nil)

	err := service.DeleteUser(ctx, userID, adminActor())
	require.NoError(t, err)
	mocks.ratings.AssertExpectations(t)
	mocks.stores.AssertExpectations(t)
	mocks.users.AssertExpectations(t)
}

func TestAdminService_DeleteUser_CannotDeleteSelf(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	actor := adminActor()
	err := service.DeleteUser(context.Background(), actor.ID, actor)
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	mocks.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminService_Stats_ReturnsTotals(t *testing.T) {
	service, mocks := newAdminServiceForTest()

	ctx := context.Background()
	mocks.users.On("Count", ctx).Return(int64(10), nil)
	mocks.stores.On("Count", ctx).Return(int64(3), nil)
	mocks.ratings.On("Count", ctx).Return(int64(27), nil)

	stats, err := service.Stats(ctx, adminActor())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalStores)
	assert.Equal(t, int64(27), stats.TotalRatings)
}

func TestAdminService_Stats_ForbiddenForRegularUsers(t *testing.T) {
	service, _ := newAdminServiceForTest()

	_, err := service.Stats(context.Background(), &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}
