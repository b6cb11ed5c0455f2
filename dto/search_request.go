package dto

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
)

// PropertySearchParams holds the search filters. Every filter is optional:
// a nil pointer means "no constraint", which for the tri-state booleans
// (HasParking, HasBalcony, ...) is distinct from an explicit false.
type PropertySearchParams struct {
	SearchText *string

	// Location
	City         *string
	Cities       []string
	County       *string
	Neighborhood *string

	// Categorical
	PropertyType *domain.PropertyType
	ListingType  *domain.ListingType
	EnergyRating *string
	OwnerID      *uuid.UUID

	// Numeric ranges
	MinPrice     *int
	MaxPrice     *int
	MinRooms     *int
	MaxRooms     *int
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	MaxBathrooms *int
	MinArea      *int
	MaxArea      *int
	MinFloor     *int
	MaxFloor     *int
	MinYearBuilt *int
	MaxYearBuilt *int

	// Boolean features
	HasParking  *bool
	HasBalcony  *bool
	HasGarage   *bool
	HasTerrace  *bool
	HasGarden   *bool
	IsFurnished *bool

	// Recency
	PostedSinceDays *int

	// Geospatial: point + radius search
	Lat      *float64
	Lng      *float64
	RadiusKm *float64

	// Geospatial: map viewport (bounding box corners)
	SWLat *float64
	SWLng *float64
	NELat *float64
	NELng *float64

	ExcludeSoldRented bool

	// Sorting & pagination
	SortBy   string
	Page     int
	PageSize int
}

// ApplyDefaults fills in the default page, page size and sort order.
func (p *PropertySearchParams) ApplyDefaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.SortBy == "" {
		p.SortBy = "newest"
	}
}

// CanonicalParams returns the normalized, non-nil parameter set as a flat
// key/value map. It drives both the search cache key and analytics logging.
func (p PropertySearchParams) CanonicalParams() map[string]string {
	m := make(map[string]string)

	setStr := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	setInt := func(key string, v *int) {
		if v != nil {
			m[key] = strconv.Itoa(*v)
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			m[key] = strconv.FormatBool(*v)
		}
	}
	setFloat := func(key string, v *float64) {
		if v != nil {
			m[key] = strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}

	setStr("search_text", p.SearchText)
	setStr("city", p.City)
	if len(p.Cities) > 0 {
		m["cities"] = strings.Join(p.Cities, ",")
	}
	setStr("county", p.County)
	setStr("neighborhood", p.Neighborhood)
	if p.PropertyType != nil {
		m["property_type"] = string(*p.PropertyType)
	}
	if p.ListingType != nil {
		m["listing_type"] = string(*p.ListingType)
	}
	setStr("energy_rating", p.EnergyRating)
	if p.OwnerID != nil {
		m["owner_id"] = p.OwnerID.String()
	}
	setInt("min_price", p.MinPrice)
	setInt("max_price", p.MaxPrice)
	setInt("min_rooms", p.MinRooms)
	setInt("max_rooms", p.MaxRooms)
	setInt("min_bedrooms", p.MinBedrooms)
	setInt("max_bedrooms", p.MaxBedrooms)
	setInt("min_bathrooms", p.MinBathrooms)
	setInt("max_bathrooms", p.MaxBathrooms)
	setInt("min_area", p.MinArea)
	setInt("max_area", p.MaxArea)
	setInt("min_floor", p.MinFloor)
	setInt("max_floor", p.MaxFloor)
	setInt("min_year_built", p.MinYearBuilt)
	setInt("max_year_built", p.MaxYearBuilt)
	setBool("has_parking", p.HasParking)
	setBool("has_balcony", p.HasBalcony)
	setBool("has_garage", p.HasGarage)
	setBool("has_terrace", p.HasTerrace)
	setBool("has_garden", p.HasGarden)
	setBool("is_furnished", p.IsFurnished)
	setInt("posted_since_days", p.PostedSinceDays)
	setFloat("lat", p.Lat)
	setFloat("lng", p.Lng)
	setFloat("radius_km", p.RadiusKm)
	setFloat("sw_lat", p.SWLat)
	setFloat("sw_lng", p.SWLng)
	setFloat("ne_lat", p.NELat)
	setFloat("ne_lng", p.NELng)
	if p.ExcludeSoldRented {
		m["exclude_sold_rented"] = "true"
	}
	m["sort_by"] = p.SortBy
	m["page"] = strconv.Itoa(p.Page)
	m["page_size"] = strconv.Itoa(p.PageSize)

	return m
}

// Canonical returns an order-independent encoding of the parameter set,
// suitable for hashing into a cache key.
func (p PropertySearchParams) Canonical() string {
	params := p.CanonicalParams()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return strings.Join(parts, "|")
}
