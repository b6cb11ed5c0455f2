package dto

import "github.com/davidjirca/dreamhome/domain"

// PropertySearchResponse is the paginated result of a property search.
type PropertySearchResponse struct {
	Items      []domain.Property `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	ElapsedMs  float64           `json:"elapsed_ms"`
}

// ClientMeta carries request metadata for search analytics.
type ClientMeta struct {
	SessionID string
	IPAddress string
	UserAgent string
	Referer   string
}

// ErrorResponse is the error payload returned by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse wraps a successful mutation result.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
