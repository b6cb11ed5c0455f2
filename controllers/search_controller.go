package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/services"
)

// SearchController exposes the property search endpoint.
type SearchController struct {
	service services.SearchService
}

// NewSearchController creates a new SearchController.
func NewSearchController(service services.SearchService) *SearchController {
	return &SearchController{service: service}
}

// Search handles GET /api/properties/search. Every filter arrives as an
// optional query parameter; an absent parameter means no constraint.
func (sc *SearchController) Search(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response, err := sc.service.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	// Analytics must never delay the response.
	meta := dto.ClientMeta{
		SessionID: c.GetHeader("X-Session-ID"),
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   c.GetHeader("Referer"),
	}
	var userID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = &id
	}
	go sc.service.LogSearch(context.Background(), params, response, userID, meta)

	c.JSON(http.StatusOK, response)
}

type paramError struct{ message string }

func (e paramError) Error() string { return e.message }

// parseSearchParams reads every supported filter off the query string.
// Malformed values fail the whole request rather than being ignored.
func parseSearchParams(c *gin.Context) (dto.PropertySearchParams, error) {
	var params dto.PropertySearchParams
	var parseErr error

	strParam := func(name string) *string {
		if value := c.Query(name); value != "" {
			return &value
		}
		return nil
	}
	intParam := func(name string) *int {
		value := c.Query(name)
		if value == "" {
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil && parseErr == nil {
			parseErr = paramError{"invalid integer for " + name}
		}
		return &n
	}
	floatParam := func(name string) *float64 {
		value := c.Query(name)
		if value == "" {
			return nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil && parseErr == nil {
			parseErr = paramError{"invalid number for " + name}
		}
		return &f
	}
	boolParam := func(name string) *bool {
		value := c.Query(name)
		if value == "" {
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil && parseErr == nil {
			parseErr = paramError{"invalid boolean for " + name}
		}
		return &b
	}

	params.SearchText = strParam("search_text")

	params.City = strParam("city")
	if cities := c.Query("cities"); cities != "" {
		for _, city := range strings.Split(cities, ",") {
			if city = strings.TrimSpace(city); city != "" {
				params.Cities = append(params.Cities, city)
			}
		}
	}
	params.County = strParam("county")
	params.Neighborhood = strParam("neighborhood")

	if value := c.Query("property_type"); value != "" {
		pt := domain.PropertyType(value)
		params.PropertyType = &pt
	}
	if value := c.Query("listing_type"); value != "" {
		lt := domain.ListingType(value)
		params.ListingType = &lt
	}
	params.EnergyRating = strParam("energy_rating")
	if value := c.Query("owner_id"); value != "" {
		ownerID, err := uuid.Parse(value)
		if err != nil {
			return params, paramError{"invalid owner_id"}
		}
		params.OwnerID = &ownerID
	}

	params.MinPrice = intParam("min_price")
	params.MaxPrice = intParam("max_price")
	params.MinRooms = intParam("min_rooms")
	params.MaxRooms = intParam("max_rooms")
	params.MinBedrooms = intParam("min_bedrooms")
	params.MaxBedrooms = intParam("max_bedrooms")
	params.MinBathrooms = intParam("min_bathrooms")
	params.MaxBathrooms = intParam("max_bathrooms")
	params.MinArea = intParam("min_area")
	params.MaxArea = intParam("max_area")
	params.MinFloor = intParam("min_floor")
	params.MaxFloor = intParam("max_floor")
	params.MinYearBuilt = intParam("min_year_built")
	params.MaxYearBuilt = intParam("max_year_built")

	params.HasParking = boolParam("has_parking")
	params.HasBalcony = boolParam("has_balcony")
	params.HasGarage = boolParam("has_garage")
	params.HasTerrace = boolParam("has_terrace")
	params.HasGarden = boolParam("has_garden")
	params.IsFurnished = boolParam("is_furnished")

	params.PostedSinceDays = intParam("posted_since_days")

	params.Lat = floatParam("lat")
	params.Lng = floatParam("lng")
	params.RadiusKm = floatParam("radius_km")

	params.SWLat = floatParam("sw_lat")
	params.SWLng = floatParam("sw_lng")
	params.NELat = floatParam("ne_lat")
	params.NELng = floatParam("ne_lng")

	if value := boolParam("exclude_sold_rented"); value != nil {
		params.ExcludeSoldRented = *value
	}

	params.SortBy = c.Query("sort_by")
	if page := intParam("page"); page != nil {
		params.Page = *page
	}
	if pageSize := intParam("page_size"); pageSize != nil {
		params.PageSize = *pageSize
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	if parseErr != nil {
		return params, parseErr
	}
	return params, nil
}
