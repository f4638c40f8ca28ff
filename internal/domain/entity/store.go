package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a registered store that users can browse and rate.
//
// AverageRating and TotalRatings are derived caches over the rating ledger.
// The ledger is the source of truth; both fields are recomputed after every
// rating write and must never be edited directly.
type Store struct {
	ID            uuid.UUID  // The unique identifier for the store.
	Name          string     // The store's display name.
	Category      string     // A free-form category, e.g. "Grocery" or "Electronics".
	Address       string     // The store's physical address.
	Description   string     // A description of the store.
	OwnerID       *uuid.UUID // The owning user, if any. Unassigned stores carry nil.
	AverageRating float64    // Cached average over all ratings for this store. 0 when unrated.
	TotalRatings  int64      // Cached count of ratings for this store.
	CreatedAt     time.Time  // Timestamp of when this store was registered.
	UpdatedAt     time.Time  // Timestamp of the last modification to this store.
}

// OwnedBy reports whether the store is owned by the given user.
func (s *Store) OwnedBy(userID uuid.UUID) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
