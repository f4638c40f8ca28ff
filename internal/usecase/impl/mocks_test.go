package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the callback directly against a factory of the same
// mocks the test configured, without any real transaction.
type stubTxManager struct {
	factory *stubRepoFactory
}

func (tm *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

type stubRepoFactory struct {
	users         *mockUserRepository
	stores        *mockStoreRepository
	ratings       *mockRatingRepository
	refreshTokens *mockRefreshTokenRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository     { return f.users }
func (f *stubRepoFactory) StoreRepo() repository.StoreRepository   { return f.stores }
func (f *stubRepoFactory) RatingRepo() repository.RatingRepository { return f.ratings }
func (f *stubRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokens
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockStoreRepository struct {
	mock.Mock
}

func (m *mockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if store, ok := args.Get(0).(*entity.Store); ok {
		return store, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) Search(ctx context.Context, query string) ([]*entity.Store, error) {
	args := m.Called(ctx, query)
	if stores, ok := args.Get(0).([]*entity.Store); ok {
		return stores, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	args := m.Called(ctx, ownerID)
	if stores, ok := args.Get(0).([]*entity.Store); ok {
		return stores, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *mockStoreRepository) Update(ctx context.Context, store *entity.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *mockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStoreRepository) UpdateAggregates(ctx context.Context, id uuid.UUID, average float64, count int64) error {
	return m.Called(ctx, id, average, count).Error(0)
}

func (m *mockStoreRepository) ReleaseOwner(ctx context.Context, ownerID uuid.UUID) error {
	return m.Called(ctx, ownerID).Error(0)
}

func (m *mockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, id)
	if rating, ok := args.Get(0).(*entity.Rating); ok {
		return rating, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) FindByStoreAndUser(ctx context.Context, storeID, userID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, storeID, userID)
	if rating, ok := args.Get(0).(*entity.Rating); ok {
		return rating, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, storeID)
	if ratings, ok := args.Get(0).([]*entity.Rating); ok {
		return ratings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *mockRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *mockRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRatingRepository) DeleteByStore(ctx context.Context, storeID uuid.UUID) error {
	return m.Called(ctx, storeID).Error(0)
}

func (m *mockRatingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) AggregateByStore(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, storeID)

	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *mockRatingRepository) ScoresByUser(ctx context.Context, userID uuid.UUID, storeIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, userID, storeIDs)
	if scores, ok := args.Get(0).(map[uuid.UUID]int); ok {
		return scores, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockRefreshTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *mockPasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateTokens(userID uuid.UUID, role string) (string, string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if token, ok := args.Get(0).(*jwt.Token); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if token, ok := args.Get(0).(*jwt.Token); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
