package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
)

func newTestSearchService() (SearchService, *mockPropertyRepository, *mockCacheRepository, *mockAnalyticsRepository) {
	repo := newMockPropertyRepository()
	cache := newMockCacheRepository()
	analytics := &mockAnalyticsRepository{}
	return NewSearchService(repo, cache, analytics), repo, cache, analytics
}

func TestSearch_AppliesDefaults(t *testing.T) {
	service, repo, _, _ := newTestSearchService()
	repo.searchTotal = 0

	response, err := service.Search(context.Background(), dto.PropertySearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Page != 1 {
		t.Errorf("expected default page 1, got %d", response.Page)
	}
	if response.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", response.PageSize)
	}
	if response.TotalPages != 0 {
		t.Errorf("expected 0 pages for empty result, got %d", response.TotalPages)
	}
}

func TestSearch_CachesIdenticalQueries(t *testing.T) {
	service, repo, _, _ := newTestSearchService()
	repo.searchResults = []domain.Property{{ID: uuid.New()}}
	repo.searchTotal = 1

	params := dto.PropertySearchParams{City: strPtr("Cluj-Napoca")}

	first, err := service.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.searchCalls != 1 {
		t.Errorf("expected 1 repository search, got %d", repo.searchCalls)
	}
	if first.Total != second.Total || len(first.Items) != len(second.Items) {
		t.Error("cached response differs from the original")
	}
}

func TestSearch_DifferentParamsMissTheCache(t *testing.T) {
	service, repo, _, _ := newTestSearchService()
	repo.searchResults = []domain.Property{{ID: uuid.New()}}
	repo.searchTotal = 1

	if _, err := service.Search(context.Background(), dto.PropertySearchParams{City: strPtr("Cluj-Napoca")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Search(context.Background(), dto.PropertySearchParams{City: strPtr("Brasov")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.searchCalls != 2 {
		t.Errorf("expected 2 repository searches, got %d", repo.searchCalls)
	}
}

func TestSearch_InvalidationForcesRederive(t *testing.T) {
	service, repo, cache, _ := newTestSearchService()
	repo.searchResults = []domain.Property{{ID: uuid.New()}}
	repo.searchTotal = 1

	params := dto.PropertySearchParams{MinRooms: intPtr(2)}

	if _, err := service.Search(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.InvalidateSearches()

	if _, err := service.Search(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.searchCalls != 2 {
		t.Errorf("expected invalidation to force a re-derive, got %d searches", repo.searchCalls)
	}
}

func TestSearch_TotalPagesMath(t *testing.T) {
	service, repo, _, _ := newTestSearchService()
	repo.searchTotal = 41

	params := dto.PropertySearchParams{PageSize: 20}
	response, err := service.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.TotalPages != 3 {
		t.Errorf("expected 3 pages for 41 results at 20 per page, got %d", response.TotalPages)
	}
}

func TestLogSearch_RecordsQuery(t *testing.T) {
	service, _, _, analytics := newTestSearchService()

	params := dto.PropertySearchParams{SearchText: strPtr("garsoniera centru"), Page: 1, PageSize: 20, SortBy: "relevance"}
	response := &dto.PropertySearchResponse{Total: 7, ElapsedMs: 12.5}
	userID := uuid.New()

	service.LogSearch(context.Background(), params, response, &userID, dto.ClientMeta{IPAddress: "10.0.0.1"})

	if len(analytics.queries) != 1 {
		t.Fatalf("expected 1 logged query, got %d", len(analytics.queries))
	}
	query := analytics.queries[0]
	if query.SearchText != "garsoniera centru" {
		t.Errorf("unexpected search text: %q", query.SearchText)
	}
	if query.ResultCount != 7 {
		t.Errorf("expected result count 7, got %d", query.ResultCount)
	}
	if query.UserID == nil || *query.UserID != userID {
		t.Error("expected the user to be attributed")
	}
	if query.Filters["search_text"] != "garsoniera centru" {
		t.Errorf("expected normalized filters, got %v", query.Filters)
	}
}

func TestLogSearch_NoAnalyticsStore(t *testing.T) {
	repo := newMockPropertyRepository()
	cache := newMockCacheRepository()
	service := NewSearchService(repo, cache, nil)

	// Must not panic with analytics disabled.
	service.LogSearch(context.Background(), dto.PropertySearchParams{}, &dto.PropertySearchResponse{}, nil, dto.ClientMeta{})
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
