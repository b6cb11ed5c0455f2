package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchQuery is an append-only analytics record of a search request.
// It is written fire-and-forget to the analytics store and never read
// back by the application.
type SearchQuery struct {
	ID         uuid.UUID  `bson:"_id" json:"id"`
	UserID     *uuid.UUID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	SessionID  string     `bson:"session_id,omitempty" json:"session_id,omitempty"`
	SearchText string     `bson:"search_text,omitempty" json:"search_text,omitempty"`

	// Filters holds the full normalized parameter set of the request.
	Filters map[string]string `bson:"filters" json:"filters"`

	ResultCount     int64   `bson:"result_count" json:"result_count"`
	ExecutionTimeMs float64 `bson:"execution_time_ms" json:"execution_time_ms"`

	IPAddress string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Referer   string    `bson:"referer,omitempty" json:"referer,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
