package postgres

import (
	"context"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storeRepository implements the domain's StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel
	err := repo.db.WithContext(ctx).First(&storeM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// Search retrieves stores matching the query on name, category or address.
func (repo *storeRepository) Search(ctx context.Context, query string) ([]*entity.Store, error) {
	tx := repo.db.WithContext(ctx).Order("name")
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name ILIKE ? OR category ILIKE ? OR address ILIKE ?", pattern, pattern, pattern)
	}

	var models []model.StoreModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search stores")
	}

	return toStoreDomainSlice(models), nil
}

// FindByOwner retrieves all stores owned by the given user.
func (repo *storeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	var models []model.StoreModel
	err := repo.db.WithContext(ctx).Order("name").Find(&models, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find stores by owner")
	}

	return toStoreDomainSlice(models), nil
}

// Create persists a new store entity to the database.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("store owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies an existing store entity in the database.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Save(storeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update store")
	}

	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Delete removes a store by ID. Ratings referencing the store are removed by
// the caller inside the same transaction.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// UpdateAggregates writes the cached rating aggregate columns for a store.
// A store that no longer exists matches zero rows, which is fine: the cache
// died with the row.
func (repo *storeRepository) UpdateAggregates(ctx context.Context, id uuid.UUID, average float64, count int64) error {
	err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": average,
			"total_ratings":  count,
		}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update store aggregates")
	}

	return nil
}

// ReleaseOwner detaches every store owned by the given user.
func (repo *storeRepository) ReleaseOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("owner_id = ?", ownerID).
		Update("owner_id", nil).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to release store owner")
	}

	return nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.StoreModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

// --- Mapper Functions ---

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:            data.ID,
		Name:          data.Name,
		Category:      data.Category,
		Address:       data.Address,
		Description:   data.Description,
		OwnerID:       data.OwnerID,
		AverageRating: data.AverageRating,
		TotalRatings:  data.TotalRatings,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toStoreDomainSlice(models []model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(models))
	for i := range models {
		stores = append(stores, toStoreDomain(&models[i]))
	}

	return stores
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel for persistence.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:            data.ID,
		Name:          data.Name,
		Category:      data.Category,
		Address:       data.Address,
		Description:   data.Description,
		OwnerID:       data.OwnerID,
		AverageRating: data.AverageRating,
		TotalRatings:  data.TotalRatings,
	}
}
