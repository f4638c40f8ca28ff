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

// ratingRepository implements the domain's RatingRepository interface using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// FindByID retrieves a single rating by its unique ID.
func (repo *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).First(&ratingM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by id")
	}

	return toRatingDomain(&ratingM), nil
}

// FindByStoreAndUser retrieves the single rating for a (store, user) pair.
func (repo *ratingRepository) FindByStoreAndUser(ctx context.Context, storeID, userID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		First(&ratingM, "store_id = ? AND user_id = ?", storeID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by store and user")
	}

	return toRatingDomain(&ratingM), nil
}

// ratingWithRater is the row shape of the ledger listing join.
type ratingWithRater struct {
	model.RatingModel
	RaterName string
}

// ListByStore retrieves all ratings for a store, newest first, joined with
// the author's display name.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	var rows []ratingWithRater
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.*, users.name AS rater_name").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings for store")
	}

	ratings := make([]*entity.Rating, 0, len(rows))
	for i := range rows {
		rating := toRatingDomain(&rows[i].RatingModel)
		rating.RaterName = rows[i].RaterName
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

// Create persists a new rating. A collision on the (store_id, user_id)
// unique index is reported as ErrDuplicateRating so the caller can fall back
// to an update.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrScoreOutOfRange.WrapMessage("score rejected by database constraint")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound.WrapMessage("invalid store or user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Update modifies an existing rating's score and comment.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("id = ?", rating.ID).
		Updates(map[string]any{
			"score":   rating.Score,
			"comment": rating.Comment,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrScoreOutOfRange.WrapMessage("score rejected by database constraint")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// Delete removes a rating by ID.
func (repo *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.RatingModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// DeleteByStore removes every rating referencing the given store.
func (repo *ratingRepository) DeleteByStore(ctx context.Context, storeID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Delete(&model.RatingModel{}, "store_id = ?", storeID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete ratings for store")
	}

	return nil
}

// DeleteByUser removes every rating authored by the user, returning the IDs
// of the stores whose aggregates now need recomputing.
func (repo *ratingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var storeIDs []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("store_id", &storeIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect stores rated by user")
	}

	if len(storeIDs) == 0 {
		return nil, nil
	}

	if err := repo.db.WithContext(ctx).Delete(&model.RatingModel{}, "user_id = ?", userID).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete ratings by user")
	}

	return storeIDs, nil
}

// AggregateByStore re-reads the full ledger for a store. COALESCE keeps the
// empty-ledger case at 0 rather than NULL.
func (repo *ratingRepository) AggregateByStore(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}

	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to aggregate ratings for store")
	}

	return result.Average, result.Count, nil
}

// ScoresByUser returns the user's score per store for the listed stores.
func (repo *ratingRepository) ScoresByUser(ctx context.Context, userID uuid.UUID, storeIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(storeIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	var rows []struct {
		StoreID uuid.UUID
		Score   int
	}

	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("store_id, score").
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user scores")
	}

	scores := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		scores[row.StoreID] = row.Score
	}

	return scores, nil
}

// Count returns the total number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RatingModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// --- Mapper Functions ---

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		StoreID:   data.StoreID,
		UserID:    data.UserID,
		Score:     data.Score,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:      data.ID,
		StoreID: data.StoreID,
		UserID:  data.UserID,
		Score:   data.Score,
		Comment: data.Comment,
	}
}
