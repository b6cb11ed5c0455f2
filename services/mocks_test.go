package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
)

// mockPropertyRepository is a map-backed PropertyRepository for service
// tests. Search returns a canned result set.
type mockPropertyRepository struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*domain.Property

	searchResults []domain.Property
	searchTotal   int64
	searchCalls   int
}

func newMockPropertyRepository() *mockPropertyRepository {
	return &mockPropertyRepository{properties: make(map[uuid.UUID]*domain.Property)}
}

func (m *mockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *property
	m.properties[property.ID] = &clone
	return nil
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	property, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	if property.DeletedAt != nil && !includeDeleted {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	clone := *property
	return &clone, nil
}

func (m *mockPropertyRepository) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, property := range m.properties {
		if property.Slug == slug && property.DeletedAt == nil {
			clone := *property
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("property slug %s: %w", slug, domain.ErrNotFound)
}

func (m *mockPropertyRepository) Save(ctx context.Context, property *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *property
	m.properties[property.ID] = &clone
	return nil
}

func (m *mockPropertyRepository) SetLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	return nil
}

func (m *mockPropertyRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if property, ok := m.properties[id]; ok {
		property.ViewCount++
	}
	return nil
}

func (m *mockPropertyRepository) Search(ctx context.Context, params dto.PropertySearchParams) ([]domain.Property, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	return m.searchResults, m.searchTotal, nil
}

// mockCacheRepository is an in-memory CacheRepository with the same
// versioned-key invalidation scheme as the real one.
type mockCacheRepository struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*domain.Property
	searches   map[string][]domain.Property
	totals     map[string]int64
	version    int

	invalidations int
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{
		properties: make(map[uuid.UUID]*domain.Property),
		searches:   make(map[string][]domain.Property),
		totals:     make(map[string]int64),
	}
}

func (m *mockCacheRepository) GetProperty(id uuid.UUID) (*domain.Property, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	property, ok := m.properties[id]
	return property, ok
}

func (m *mockCacheRepository) SetProperty(property *domain.Property) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[property.ID] = property
}

func (m *mockCacheRepository) DeleteProperty(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.properties, id)
}

func (m *mockCacheRepository) SearchKey(canonical string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("search:v%d:%s", m.version, canonical)
}

func (m *mockCacheRepository) GetSearch(key string) ([]domain.Property, int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	properties, ok := m.searches[key]
	if !ok {
		return nil, 0, false
	}
	return properties, m.totals[key], true
}

func (m *mockCacheRepository) SetSearch(key string, properties []domain.Property, total int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[key] = properties
	m.totals[key] = total
}

func (m *mockCacheRepository) InvalidateSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	m.invalidations++
}

// mockPublisher records published events.
type mockPublisher struct {
	mu     sync.Mutex
	events []string
}

func (m *mockPublisher) PublishPropertyEvent(action string, propertyID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, action)
}

func (m *mockPublisher) Close() error { return nil }

// mockAnalyticsRepository records logged search queries.
type mockAnalyticsRepository struct {
	mu      sync.Mutex
	queries []*domain.SearchQuery
}

func (m *mockAnalyticsRepository) LogSearch(ctx context.Context, query *domain.SearchQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return nil
}

// mockUserRepository is a map-backed UserRepository.
type mockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

// mockSavedSearchRepository is a map-backed SavedSearchRepository.
type mockSavedSearchRepository struct {
	mu       sync.Mutex
	searches map[uuid.UUID]*domain.SavedSearch
}

func newMockSavedSearchRepository() *mockSavedSearchRepository {
	return &mockSavedSearchRepository{searches: make(map[uuid.UUID]*domain.SavedSearch)}
}

func (m *mockSavedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[search.ID] = search
	return nil
}

func (m *mockSavedSearchRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.SavedSearch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	search, ok := m.searches[id]
	if !ok || search.UserID != userID {
		return nil, fmt.Errorf("saved search %s: %w", id, domain.ErrNotFound)
	}
	return search, nil
}

func (m *mockSavedSearchRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedSearch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, search := range m.searches {
		if search.UserID == userID && search.Name == name {
			return search, nil
		}
	}
	return nil, fmt.Errorf("saved search %q: %w", name, domain.ErrNotFound)
}

func (m *mockSavedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SavedSearch
	for _, search := range m.searches {
		if search.UserID == userID {
			out = append(out, *search)
		}
	}
	return out, nil
}

func (m *mockSavedSearchRepository) Save(ctx context.Context, search *domain.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[search.ID] = search
	return nil
}

func (m *mockSavedSearchRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	search, ok := m.searches[id]
	if !ok || search.UserID != userID {
		return false, nil
	}
	delete(m.searches, id)
	return true, nil
}
