package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/repositories"
)

// SearchService executes property searches with a read-through cache and
// records search analytics.
type SearchService interface {
	Search(ctx context.Context, params dto.PropertySearchParams) (*dto.PropertySearchResponse, error)
	LogSearch(ctx context.Context, params dto.PropertySearchParams, response *dto.PropertySearchResponse, userID *uuid.UUID, meta dto.ClientMeta)
	InvalidateCache()
}

type searchService struct {
	repo      repositories.PropertyRepository
	cache     repositories.CacheRepository
	analytics repositories.AnalyticsRepository
}

// NewSearchService creates a new SearchService. The analytics repository
// may be nil when no analytics store is configured.
func NewSearchService(
	repo repositories.PropertyRepository,
	cache repositories.CacheRepository,
	analytics repositories.AnalyticsRepository,
) SearchService {
	return &searchService{
		repo:      repo,
		cache:     cache,
		analytics: analytics,
	}
}

// Search runs a filtered, paginated property search. Identical parameter
// sets share a cache entry until the next mutation invalidates the search
// namespace.
func (s *searchService) Search(ctx context.Context, params dto.PropertySearchParams) (*dto.PropertySearchResponse, error) {
	params.ApplyDefaults()

	start := time.Now()
	key := s.cache.SearchKey(params.Canonical())

	properties, total, cached := s.cache.GetSearch(key)
	if !cached {
		var err error
		properties, total, err = s.repo.Search(ctx, params)
		if err != nil {
			return nil, err
		}
		s.cache.SetSearch(key, properties, total)
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	return &dto.PropertySearchResponse{
		Items:      properties,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		ElapsedMs:  float64(time.Since(start).Microseconds()) / 1000,
	}, nil
}

// LogSearch records the search in the analytics store. Failures are
// logged and never surface to the caller; it is safe to run in a
// goroutine after the response has been sent.
func (s *searchService) LogSearch(ctx context.Context, params dto.PropertySearchParams, response *dto.PropertySearchResponse, userID *uuid.UUID, meta dto.ClientMeta) {
	if s.analytics == nil {
		return
	}

	query := &domain.SearchQuery{
		ID:              uuid.New(),
		UserID:          userID,
		SessionID:       meta.SessionID,
		Filters:         params.CanonicalParams(),
		ResultCount:     response.Total,
		ExecutionTimeMs: response.ElapsedMs,
		IPAddress:       meta.IPAddress,
		UserAgent:       meta.UserAgent,
		Referer:         meta.Referer,
		CreatedAt:       time.Now(),
	}
	if params.SearchText != nil {
		query.SearchText = *params.SearchText
	}

	if err := s.analytics.LogSearch(ctx, query); err != nil {
		log.Printf("Error logging search query: %v", err)
	}
}

// InvalidateCache drops the whole search namespace. Used by the event
// consumer when another instance mutates a property.
func (s *searchService) InvalidateCache() {
	s.cache.InvalidateSearches()
}
