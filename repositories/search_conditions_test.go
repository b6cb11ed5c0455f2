package repositories

import (
	"strings"
	"testing"

	"github.com/davidjirca/dreamhome/dto"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func findCondition(conds []condition, substr string) (condition, bool) {
	for _, c := range conds {
		if strings.Contains(c.Expr, substr) {
			return c, true
		}
	}
	return condition{}, false
}

func TestBuildSearchConditions_BaseVisibility(t *testing.T) {
	conds := buildSearchConditions(dto.PropertySearchParams{}, "romanian")

	if _, ok := findCondition(conds, "deleted_at IS NULL"); !ok {
		t.Error("expected deleted_at predicate")
	}
	if _, ok := findCondition(conds, "published_at IS NOT NULL"); !ok {
		t.Error("expected published_at predicate")
	}
	if c, ok := findCondition(conds, "status IN"); !ok {
		t.Error("expected status IN predicate by default")
	} else if len(c.Args) != 1 {
		t.Errorf("expected 1 arg for status IN, got %d", len(c.Args))
	}
}

func TestBuildSearchConditions_ExcludeSoldRented(t *testing.T) {
	conds := buildSearchConditions(dto.PropertySearchParams{ExcludeSoldRented: true}, "romanian")

	if _, ok := findCondition(conds, "status = ?"); !ok {
		t.Error("expected status equality predicate when excluding sold/rented")
	}
	if _, ok := findCondition(conds, "status IN"); ok {
		t.Error("did not expect status IN predicate when excluding sold/rented")
	}
}

func TestFilterConditions_CitiesListWinsOverCity(t *testing.T) {
	params := dto.PropertySearchParams{
		City:   strPtr("Cluj"),
		Cities: []string{"Cluj-Napoca", "Bucuresti"},
	}
	conds := filterConditions(params)

	if _, ok := findCondition(conds, "city IN ?"); !ok {
		t.Error("expected city IN predicate for the city list")
	}
	if _, ok := findCondition(conds, "city ILIKE"); ok {
		t.Error("single-city predicate should not appear when a list is given")
	}
}

func TestFilterConditions_CitySubstringMatch(t *testing.T) {
	conds := filterConditions(dto.PropertySearchParams{City: strPtr("Cluj")})

	c, ok := findCondition(conds, "city ILIKE")
	if !ok {
		t.Fatal("expected city ILIKE predicate")
	}
	if c.Args[0] != "%Cluj%" {
		t.Errorf("expected wrapped pattern, got %v", c.Args[0])
	}
}

func TestFilterConditions_Ranges(t *testing.T) {
	params := dto.PropertySearchParams{
		MinPrice: intPtr(50000),
		MaxPrice: intPtr(100000),
		MinRooms: intPtr(2),
	}
	conds := filterConditions(params)

	if c, ok := findCondition(conds, "price >= ?"); !ok || c.Args[0] != 50000 {
		t.Errorf("expected price >= 50000, got %+v", c)
	}
	if c, ok := findCondition(conds, "price <= ?"); !ok || c.Args[0] != 100000 {
		t.Errorf("expected price <= 100000, got %+v", c)
	}
	if _, ok := findCondition(conds, "rooms >= ?"); !ok {
		t.Error("expected rooms >= predicate")
	}
	if _, ok := findCondition(conds, "rooms <= ?"); ok {
		t.Error("did not expect rooms <= predicate")
	}
}

func TestFilterConditions_TriStateParking(t *testing.T) {
	conds := filterConditions(dto.PropertySearchParams{HasParking: boolPtr(true)})
	if _, ok := findCondition(conds, "parking_spots > 0"); !ok {
		t.Error("expected parking_spots > 0 for true")
	}

	conds = filterConditions(dto.PropertySearchParams{HasParking: boolPtr(false)})
	if _, ok := findCondition(conds, "parking_spots = 0"); !ok {
		t.Error("expected parking_spots = 0 for explicit false")
	}

	conds = filterConditions(dto.PropertySearchParams{})
	if _, ok := findCondition(conds, "parking_spots"); ok {
		t.Error("expected no parking predicate when unset")
	}
}

func TestRadiusCondition_RequiresAllThree(t *testing.T) {
	params := dto.PropertySearchParams{Lat: floatPtr(46.77), Lng: floatPtr(23.59)}
	if _, ok := radiusCondition(params); ok {
		t.Error("expected no radius predicate without a radius")
	}

	params.RadiusKm = floatPtr(5)
	c, ok := radiusCondition(params)
	if !ok {
		t.Fatal("expected radius predicate with all three parameters")
	}
	// Longitude first, then latitude; radius converted to meters.
	if c.Args[0] != 23.59 || c.Args[1] != 46.77 {
		t.Errorf("expected lng/lat ordering, got %v", c.Args)
	}
	if c.Args[2] != float64(5000) {
		t.Errorf("expected radius in meters, got %v", c.Args[2])
	}
}

func TestBoundingBoxCondition_PartialBoxIgnored(t *testing.T) {
	params := dto.PropertySearchParams{
		SWLat: floatPtr(46.7),
		SWLng: floatPtr(23.5),
		NELat: floatPtr(46.8),
	}
	if _, ok := boundingBoxCondition(params); ok {
		t.Error("expected no bounding-box predicate with a missing corner")
	}

	params.NELng = floatPtr(23.7)
	c, ok := boundingBoxCondition(params)
	if !ok {
		t.Fatal("expected bounding-box predicate with all four corners")
	}
	if len(c.Args) != 4 {
		t.Errorf("expected 4 args, got %d", len(c.Args))
	}
}

func TestTextSearchCondition_BlankIgnored(t *testing.T) {
	if _, ok := textSearchCondition(nil, "romanian"); ok {
		t.Error("expected no text predicate for nil")
	}
	if _, ok := textSearchCondition(strPtr("   "), "romanian"); ok {
		t.Error("expected no text predicate for blank text")
	}

	c, ok := textSearchCondition(strPtr(" garsoniera centru "), "romanian")
	if !ok {
		t.Fatal("expected text predicate")
	}
	if c.Args[0] != "romanian" || c.Args[1] != "garsoniera centru" {
		t.Errorf("expected dictionary and trimmed text, got %v", c.Args)
	}
}

func TestResolveOrder_Defaults(t *testing.T) {
	o := resolveOrder(dto.PropertySearchParams{SortBy: "newest"}, "romanian")
	if o.Expr != "published_at DESC" {
		t.Errorf("expected newest-first default, got %q", o.Expr)
	}

	o = resolveOrder(dto.PropertySearchParams{SortBy: "price_asc"}, "romanian")
	if o.Expr != "price ASC" {
		t.Errorf("expected price ASC, got %q", o.Expr)
	}
}

func TestResolveOrder_FallbacksWhenPreconditionsMissing(t *testing.T) {
	// Distance sort without coordinates falls back to newest.
	o := resolveOrder(dto.PropertySearchParams{SortBy: "distance"}, "romanian")
	if o.Expr != "published_at DESC" {
		t.Errorf("expected fallback for distance without coordinates, got %q", o.Expr)
	}

	// Relevance sort without a text search falls back to newest.
	o = resolveOrder(dto.PropertySearchParams{SortBy: "relevance"}, "romanian")
	if o.Expr != "published_at DESC" {
		t.Errorf("expected fallback for relevance without text, got %q", o.Expr)
	}

	// Unknown keys fall back too.
	o = resolveOrder(dto.PropertySearchParams{SortBy: "bogus"}, "romanian")
	if o.Expr != "published_at DESC" {
		t.Errorf("expected fallback for unknown sort key, got %q", o.Expr)
	}
}

func TestResolveOrder_DistanceAndRelevance(t *testing.T) {
	params := dto.PropertySearchParams{
		SortBy: "distance",
		Lat:    floatPtr(46.77),
		Lng:    floatPtr(23.59),
	}
	o := resolveOrder(params, "romanian")
	if !strings.Contains(o.Expr, "ST_Distance") {
		t.Errorf("expected distance ordering, got %q", o.Expr)
	}

	params = dto.PropertySearchParams{
		SortBy:     "relevance",
		SearchText: strPtr("vedere spre parc"),
	}
	o = resolveOrder(params, "romanian")
	if !strings.Contains(o.Expr, "ts_rank") {
		t.Errorf("expected relevance ordering, got %q", o.Expr)
	}
}

func TestPageOffsetLimit(t *testing.T) {
	offset, limit := pageOffsetLimit(1, 20)
	if offset != 0 || limit != 20 {
		t.Errorf("page 1: got offset=%d limit=%d", offset, limit)
	}

	offset, limit = pageOffsetLimit(3, 25)
	if offset != 50 || limit != 25 {
		t.Errorf("page 3: got offset=%d limit=%d", offset, limit)
	}
}
