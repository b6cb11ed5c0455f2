package dto

import "github.com/davidjirca/dreamhome/domain"

// CreatePropertyRequest is the payload for creating a property listing.
type CreatePropertyRequest struct {
	Title        string              `json:"title" binding:"required,min=10,max=200"`
	Description  string              `json:"description"`
	PropertyType domain.PropertyType `json:"property_type" binding:"required"`
	ListingType  domain.ListingType  `json:"listing_type" binding:"required"`
	Price        int                 `json:"price" binding:"required,gt=0"`
	Currency     string              `json:"currency"`
	Negotiable   bool                `json:"negotiable"`
	TotalArea    int                 `json:"total_area" binding:"required,gt=0"`
	UsableArea   *int                `json:"usable_area"`
	Rooms        int                 `json:"rooms" binding:"required,gte=1"`
	Bedrooms     int                 `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int                 `json:"bathrooms" binding:"required,gte=1"`
	Floor        *int                `json:"floor"`
	TotalFloors  *int                `json:"total_floors"`
	YearBuilt    *int                `json:"year_built" binding:"omitempty,gte=1800,lte=2025"`
	Balconies    int                 `json:"balconies" binding:"gte=0"`
	ParkingSpots int                 `json:"parking_spots" binding:"gte=0"`
	HasGarage    bool                `json:"has_garage"`
	HasTerrace   bool                `json:"has_terrace"`
	HasGarden    bool                `json:"has_garden"`
	IsFurnished  bool                `json:"is_furnished"`
	HeatingType  string              `json:"heating_type"`
	EnergyRating string              `json:"energy_rating"`
	Address      string              `json:"address" binding:"required,min=5"`
	City         string              `json:"city" binding:"required"`
	County       string              `json:"county" binding:"required"`
	PostalCode   string              `json:"postal_code"`
	Neighborhood string              `json:"neighborhood"`
	Latitude     *float64            `json:"latitude"`
	Longitude    *float64            `json:"longitude"`
	Photos       []string            `json:"photos"`
	MainPhoto    string              `json:"main_photo"`
}

// UpdatePropertyRequest is a partial update: only non-nil fields are
// applied. The field set is a fixed whitelist; the service applies each
// one explicitly rather than copying arbitrary attributes.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=10,max=200"`
	Description  *string  `json:"description"`
	Price        *int     `json:"price" binding:"omitempty,gt=0"`
	Negotiable   *bool    `json:"negotiable"`
	TotalArea    *int     `json:"total_area" binding:"omitempty,gt=0"`
	UsableArea   *int     `json:"usable_area"`
	Rooms        *int     `json:"rooms" binding:"omitempty,gte=1"`
	Bedrooms     *int     `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms" binding:"omitempty,gte=1"`
	Floor        *int     `json:"floor"`
	TotalFloors  *int     `json:"total_floors"`
	YearBuilt    *int     `json:"year_built" binding:"omitempty,gte=1800,lte=2025"`
	Balconies    *int     `json:"balconies" binding:"omitempty,gte=0"`
	ParkingSpots *int     `json:"parking_spots" binding:"omitempty,gte=0"`
	HasGarage    *bool    `json:"has_garage"`
	HasTerrace   *bool    `json:"has_terrace"`
	HasGarden    *bool    `json:"has_garden"`
	IsFurnished  *bool    `json:"is_furnished"`
	HeatingType  *string  `json:"heating_type"`
	EnergyRating *string  `json:"energy_rating"`
	Address      *string  `json:"address" binding:"omitempty,min=5"`
	City         *string  `json:"city"`
	County       *string  `json:"county"`
	PostalCode   *string  `json:"postal_code"`
	Neighborhood *string  `json:"neighborhood"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Photos       []string `json:"photos"`
	MainPhoto    *string  `json:"main_photo"`
}
