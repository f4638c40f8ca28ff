package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating score bounds. A score outside this range is never persisted.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a single user's rating of a single store. The (StoreID, UserID)
// pair is unique: re-rating a store updates the existing record in place.
type Rating struct {
	ID        uuid.UUID // The unique identifier for the rating.
	StoreID   uuid.UUID // The store this rating belongs to.
	UserID    uuid.UUID // The author of the rating.
	Score     int       // Integer score between MinScore and MaxScore inclusive.
	Comment   string    // Optional free-form comment.
	RaterName string    // Display name of the author. Populated by ledger listings, not persisted.
	CreatedAt time.Time // Timestamp of the first submission.
	UpdatedAt time.Time // Timestamp of the most recent submission.
}

// ValidScore reports whether score is inside the accepted range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
