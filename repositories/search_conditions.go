package repositories

import (
	"strings"
	"time"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
)

// condition is a single parameterized WHERE predicate. Values are always
// bound as arguments, never interpolated into the SQL text.
type condition struct {
	Expr string
	Args []interface{}
}

// orderClause is a parameterized ORDER BY expression.
type orderClause struct {
	Expr string
	Args []interface{}
}

// buildSearchConditions compiles the filter parameters into a conjunction
// of predicates. The same set drives both the count query and the page
// query. Order of the conditions does not affect the result: everything
// is AND-combined.
func buildSearchConditions(params dto.PropertySearchParams, dictionary string) []condition {
	conds := []condition{
		// Base visibility: soft-deleted and unpublished listings are never
		// searchable, regardless of the requested filters.
		{Expr: "deleted_at IS NULL"},
		{Expr: "published_at IS NOT NULL"},
		statusCondition(params.ExcludeSoldRented),
	}

	conds = append(conds, filterConditions(params)...)

	if c, ok := radiusCondition(params); ok {
		conds = append(conds, c)
	}
	if c, ok := boundingBoxCondition(params); ok {
		conds = append(conds, c)
	}
	if c, ok := textSearchCondition(params.SearchText, dictionary); ok {
		conds = append(conds, c)
	}

	return conds
}

// statusCondition restricts the visible lifecycle states.
func statusCondition(excludeSoldRented bool) condition {
	if excludeSoldRented {
		return condition{Expr: "status = ?", Args: []interface{}{domain.PropertyStatusActive}}
	}
	return condition{Expr: "status IN ?", Args: []interface{}{[]domain.PropertyStatus{
		domain.PropertyStatusActive,
		domain.PropertyStatusSold,
		domain.PropertyStatusRented,
	}}}
}

// filterConditions maps the attribute filters onto predicates. Absent
// filters contribute nothing.
func filterConditions(params dto.PropertySearchParams) []condition {
	var conds []condition

	add := func(expr string, args ...interface{}) {
		conds = append(conds, condition{Expr: expr, Args: args})
	}

	// Location: an explicit city list is an exact membership test, a single
	// city is a case-insensitive substring match.
	if len(params.Cities) > 0 {
		add("city IN ?", params.Cities)
	} else if params.City != nil {
		add("city ILIKE ?", "%"+*params.City+"%")
	}
	if params.County != nil {
		add("county ILIKE ?", "%"+*params.County+"%")
	}
	if params.Neighborhood != nil {
		add("neighborhood ILIKE ?", "%"+*params.Neighborhood+"%")
	}

	// Categorical
	if params.PropertyType != nil {
		add("property_type = ?", *params.PropertyType)
	}
	if params.ListingType != nil {
		add("listing_type = ?", *params.ListingType)
	}
	if params.EnergyRating != nil {
		add("energy_rating = ?", *params.EnergyRating)
	}
	if params.OwnerID != nil {
		add("owner_id = ?", *params.OwnerID)
	}

	// Numeric ranges: min and max are independent and may both be set.
	rangeFilter := func(column string, min, max *int) {
		if min != nil {
			add(column+" >= ?", *min)
		}
		if max != nil {
			add(column+" <= ?", *max)
		}
	}
	rangeFilter("price", params.MinPrice, params.MaxPrice)
	rangeFilter("rooms", params.MinRooms, params.MaxRooms)
	rangeFilter("bedrooms", params.MinBedrooms, params.MaxBedrooms)
	rangeFilter("bathrooms", params.MinBathrooms, params.MaxBathrooms)
	rangeFilter("total_area", params.MinArea, params.MaxArea)
	rangeFilter("floor", params.MinFloor, params.MaxFloor)
	rangeFilter("year_built", params.MinYearBuilt, params.MaxYearBuilt)

	// Tri-state booleans derived from counters: true means "at least one",
	// false means "none", nil means no constraint.
	if params.HasParking != nil {
		if *params.HasParking {
			add("parking_spots > 0")
		} else {
			add("parking_spots = 0")
		}
	}
	if params.HasBalcony != nil {
		if *params.HasBalcony {
			add("balconies > 0")
		} else {
			add("balconies = 0")
		}
	}

	// Direct boolean features
	if params.HasGarage != nil {
		add("has_garage = ?", *params.HasGarage)
	}
	if params.HasTerrace != nil {
		add("has_terrace = ?", *params.HasTerrace)
	}
	if params.HasGarden != nil {
		add("has_garden = ?", *params.HasGarden)
	}
	if params.IsFurnished != nil {
		add("is_furnished = ?", *params.IsFurnished)
	}

	// Recency
	if params.PostedSinceDays != nil {
		cutoff := time.Now().AddDate(0, 0, -*params.PostedSinceDays)
		add("published_at >= ?", cutoff)
	}

	return conds
}

// radiusCondition builds a "within N km of point" predicate. All three of
// lat/lng/radius must be present; otherwise no predicate is emitted.
func radiusCondition(params dto.PropertySearchParams) (condition, bool) {
	if params.Lat == nil || params.Lng == nil || params.RadiusKm == nil {
		return condition{}, false
	}
	return condition{
		Expr: "ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
		Args: []interface{}{*params.Lng, *params.Lat, *params.RadiusKm * 1000},
	}, true
}

// boundingBoxCondition builds a map-viewport envelope-overlap predicate.
// Incomplete corner sets are silently ignored: a partial viewport applies
// no geographic constraint at all.
func boundingBoxCondition(params dto.PropertySearchParams) (condition, bool) {
	if params.SWLat == nil || params.SWLng == nil || params.NELat == nil || params.NELng == nil {
		return condition{}, false
	}
	return condition{
		Expr: "location::geometry && ST_MakeEnvelope(?, ?, ?, ?, 4326)",
		Args: []interface{}{*params.SWLng, *params.SWLat, *params.NELng, *params.NELat},
	}, true
}

// distanceOrder builds the ascending-by-distance expression. Valid only
// when both coordinates are present.
func distanceOrder(params dto.PropertySearchParams) (orderClause, bool) {
	if params.Lat == nil || params.Lng == nil {
		return orderClause{}, false
	}
	return orderClause{
		Expr: "ST_Distance(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) ASC",
		Args: []interface{}{*params.Lng, *params.Lat},
	}, true
}

// textSearchCondition builds the full-text predicate against the generated
// search vector. Blank input (after trimming) applies no constraint.
func textSearchCondition(searchText *string, dictionary string) (condition, bool) {
	if searchText == nil {
		return condition{}, false
	}
	text := strings.TrimSpace(*searchText)
	if text == "" {
		return condition{}, false
	}
	return condition{
		Expr: "search_vector @@ plainto_tsquery(?::regconfig, ?)",
		Args: []interface{}{dictionary, text},
	}, true
}

// relevanceOrder builds the full-text rank expression over the same query
// the text predicate used. Valid only for an active text search.
func relevanceOrder(searchText *string, dictionary string) (orderClause, bool) {
	if searchText == nil {
		return orderClause{}, false
	}
	text := strings.TrimSpace(*searchText)
	if text == "" {
		return orderClause{}, false
	}
	return orderClause{
		Expr: "ts_rank(search_vector, plainto_tsquery(?::regconfig, ?)) DESC",
		Args: []interface{}{dictionary, text},
	}, true
}

// resolveOrder maps the sort key to a concrete ordering. Sort keys whose
// preconditions are not met (distance without coordinates, relevance
// without a text search) fall back to the newest-first default, as do
// unrecognized keys.
func resolveOrder(params dto.PropertySearchParams, dictionary string) orderClause {
	switch params.SortBy {
	case "oldest":
		return orderClause{Expr: "published_at ASC"}
	case "price_asc":
		return orderClause{Expr: "price ASC"}
	case "price_desc":
		return orderClause{Expr: "price DESC"}
	case "area_desc":
		return orderClause{Expr: "total_area DESC"}
	case "distance":
		if o, ok := distanceOrder(params); ok {
			return o
		}
	case "relevance":
		if o, ok := relevanceOrder(params.SearchText, dictionary); ok {
			return o
		}
	}
	return orderClause{Expr: "published_at DESC"}
}

// pageOffsetLimit converts the 1-indexed page number into offset/limit.
func pageOffsetLimit(page, pageSize int) (offset, limit int) {
	return (page - 1) * pageSize, pageSize
}
