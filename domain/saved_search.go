package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SavedSearch is a named snapshot of search filters a user wants to reuse.
// The filters are stored as the raw parameter set, the same shape the
// search endpoint accepts.
type SavedSearch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_saved_searches_user_name" json:"user_id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex:idx_saved_searches_user_name" json:"name"`
	Filters   datatypes.JSON `gorm:"not null" json:"filters"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the SavedSearch model.
func (SavedSearch) TableName() string {
	return "saved_searches"
}

// Favorite marks a property a user wants to track. Adding or removing a
// favorite keeps the property's favorite_count in sync.
type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_property" json:"property_id"`
	Notes      string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}
