package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SavedSearchCreate is the payload for saving a named search.
type SavedSearchCreate struct {
	Name    string          `json:"name" binding:"required,min=1,max=100"`
	Filters json.RawMessage `json:"filters" binding:"required"`
}

// SavedSearchUpdate is a partial update of a saved search.
type SavedSearchUpdate struct {
	Name    *string         `json:"name" binding:"omitempty,min=1,max=100"`
	Filters json.RawMessage `json:"filters"`
}

// FavoriteCreate is the payload for adding a property to favorites.
type FavoriteCreate struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}
