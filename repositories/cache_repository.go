package repositories

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"

	"github.com/davidjirca/dreamhome/domain"
)

// CacheRepository defines the cache contract: a read-through entity cache
// keyed by property ID and a search-result cache keyed by the normalized
// parameter set. The cache is an accelerator only — every operation
// degrades to a miss when the backing cache is unavailable.
type CacheRepository interface {
	GetProperty(id uuid.UUID) (*domain.Property, bool)
	SetProperty(property *domain.Property)
	DeleteProperty(id uuid.UUID)

	// SearchKey maps a canonical parameter encoding to the versioned cache
	// key. Bumping the version (InvalidateSearches) implicitly orphans all
	// previously issued keys.
	SearchKey(canonical string) string
	GetSearch(key string) ([]domain.Property, int64, bool)
	SetSearch(key string, properties []domain.Property, total int64)
	InvalidateSearches()
}

// searchData is the cached payload for one search-result page.
type searchData struct {
	Properties []domain.Property `json:"properties"`
	Total      int64             `json:"total"`
}

// cacheRepository implements CacheRepository with two levels: a local
// in-process LRU in front of memcached. Search invalidation is an O(1)
// version bump rather than a key enumeration: the version is part of
// every search key, so stale entries simply age out by TTL.
type cacheRepository struct {
	localSearch     *ccache.Cache[*searchData]
	localProperties *ccache.Cache[*domain.Property]
	memcached       *memcache.Client

	searchVersion atomic.Uint64

	propertyTTL time.Duration
	searchTTL   time.Duration
}

// NewCacheRepository creates a new two-level CacheRepository.
func NewCacheRepository(memcachedHost string, propertyTTL, searchTTL time.Duration) CacheRepository {
	log.Printf("Cache repository initialized with Memcached at %s", memcachedHost)

	return &cacheRepository{
		localSearch:     ccache.New(ccache.Configure[*searchData]().MaxSize(1000)),
		localProperties: ccache.New(ccache.Configure[*domain.Property]().MaxSize(5000)),
		memcached:       memcache.New(memcachedHost),
		propertyTTL:     propertyTTL,
		searchTTL:       searchTTL,
	}
}

func propertyKey(id uuid.UUID) string {
	return "property:" + id.String()
}

// GetProperty looks up a property (local level first, then memcached).
func (r *cacheRepository) GetProperty(id uuid.UUID) (*domain.Property, bool) {
	key := propertyKey(id)

	if item := r.localProperties.Get(key); item != nil && !item.Expired() {
		log.Printf("Cache HIT (local): key=%s", key)
		return item.Value(), true
	}

	memItem, err := r.memcached.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		}
		return nil, false
	}

	var property domain.Property
	if err := json.Unmarshal(memItem.Value, &property); err != nil {
		log.Printf("Error unmarshaling cached property: key=%s, error=%v", key, err)
		return nil, false
	}

	r.localProperties.Set(key, &property, r.propertyTTL)
	log.Printf("Cache HIT (Memcached): key=%s", key)
	return &property, true
}

// SetProperty stores a full property serialization in both levels.
func (r *cacheRepository) SetProperty(property *domain.Property) {
	key := propertyKey(property.ID)

	r.localProperties.Set(key, property, r.propertyTTL)

	jsonData, err := json.Marshal(property)
	if err != nil {
		log.Printf("Error marshaling property for cache: key=%s, error=%v", key, err)
		return
	}

	item := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(r.propertyTTL.Seconds()),
	}
	if err := r.memcached.Set(item); err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache SET: key=%s, ttl=%s", key, r.propertyTTL)
}

// DeleteProperty drops a property from both cache levels.
func (r *cacheRepository) DeleteProperty(id uuid.UUID) {
	key := propertyKey(id)

	r.localProperties.Delete(key)

	if err := r.memcached.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		log.Printf("Error deleting from Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache DELETE: key=%s", key)
}

// SearchKey builds the versioned search cache key.
func (r *cacheRepository) SearchKey(canonical string) string {
	hash := md5.Sum([]byte(canonical))
	return fmt.Sprintf("search:v%d:%x", r.searchVersion.Load(), hash)
}

// GetSearch looks up a cached search-result page.
func (r *cacheRepository) GetSearch(key string) ([]domain.Property, int64, bool) {
	if item := r.localSearch.Get(key); item != nil && !item.Expired() {
		data := item.Value()
		log.Printf("Cache HIT (local): key=%s", key)
		return data.Properties, data.Total, true
	}

	memItem, err := r.memcached.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		}
		log.Printf("Cache MISS: key=%s", key)
		return nil, 0, false
	}

	var data searchData
	if err := json.Unmarshal(memItem.Value, &data); err != nil {
		log.Printf("Error unmarshaling cached search data: key=%s, error=%v", key, err)
		return nil, 0, false
	}

	r.localSearch.Set(key, &data, r.searchTTL)
	log.Printf("Cache HIT (Memcached): key=%s, stored in local cache", key)
	return data.Properties, data.Total, true
}

// SetSearch stores a search-result page in both cache levels.
func (r *cacheRepository) SetSearch(key string, properties []domain.Property, total int64) {
	data := &searchData{Properties: properties, Total: total}

	r.localSearch.Set(key, data, r.searchTTL)

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling search data for cache: key=%s, error=%v", key, err)
		return
	}

	item := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(r.searchTTL.Seconds()),
	}
	if err := r.memcached.Set(item); err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache SET: key=%s, ttl=%s", key, r.searchTTL)
}

// InvalidateSearches orphans every cached search page by bumping the key
// namespace version. A concurrent reader may briefly see a pre-bump entry;
// that staleness window is bounded by the search TTL.
func (r *cacheRepository) InvalidateSearches() {
	v := r.searchVersion.Add(1)
	log.Printf("Search cache invalidated: version=%d", v)
}
