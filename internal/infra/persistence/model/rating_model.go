package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. The composite unique index on
// (store_id, user_id) enforces the one-rating-per-user-per-store invariant;
// concurrent duplicate submissions surface as a unique violation which the
// repository maps to ErrDuplicateRating.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_store_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_store_user"`
	Score     int       `gorm:"not null;check:score BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
