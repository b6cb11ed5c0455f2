package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PropertyType defines the kind of property being listed.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypePenthouse  PropertyType = "penthouse"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeDuplex     PropertyType = "duplex"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

// PropertyStatus defines the lifecycle state of a listing.
type PropertyStatus string

const (
	PropertyStatusDraft   PropertyStatus = "draft"
	PropertyStatusActive  PropertyStatus = "active"
	PropertyStatusSold    PropertyStatus = "sold"
	PropertyStatusRented  PropertyStatus = "rented"
	PropertyStatusExpired PropertyStatus = "expired"
)

// ListingType defines whether a property is for sale or for rent.
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// Property represents a real-estate listing.
//
// The `location` geography column and the `search_vector` tsvector column
// are managed with raw SQL (see repositories.EnsureSearchSchema) and are
// deliberately not mapped here: location is written with ST_MakePoint
// expressions and search_vector is a generated column.
type Property struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	// Basic info
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PropertyType PropertyType   `gorm:"type:varchar(20);not null;index" json:"property_type"`
	ListingType  ListingType    `gorm:"type:varchar(10);not null;index" json:"listing_type"`
	Status       PropertyStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	// Pricing: whole-number prices in RON/EUR, price per sqm can have decimals
	Price       int     `gorm:"not null;index" json:"price"`
	PricePerSqm float64 `gorm:"type:numeric(10,2)" json:"price_per_sqm"`
	Currency    string  `gorm:"size:3;not null;default:'RON'" json:"currency"`
	Negotiable  bool    `gorm:"not null;default:false" json:"negotiable"`

	// Details (areas in whole square meters)
	TotalArea   int  `gorm:"not null" json:"total_area"`
	UsableArea  *int `json:"usable_area,omitempty"`
	Rooms       int  `gorm:"not null;index" json:"rooms"`
	Bedrooms    int  `gorm:"not null" json:"bedrooms"`
	Bathrooms   int  `gorm:"not null" json:"bathrooms"`
	Floor       *int `json:"floor,omitempty"`
	TotalFloors *int `json:"total_floors,omitempty"`

	// Features
	YearBuilt    *int   `json:"year_built,omitempty"`
	Balconies    int    `gorm:"not null;default:0" json:"balconies"`
	ParkingSpots int    `gorm:"not null;default:0" json:"parking_spots"`
	HasGarage    bool   `gorm:"not null;default:false" json:"has_garage"`
	HasTerrace   bool   `gorm:"not null;default:false" json:"has_terrace"`
	HasGarden    bool   `gorm:"not null;default:false" json:"has_garden"`
	IsFurnished  bool   `gorm:"not null;default:false" json:"is_furnished"`
	HeatingType  string `gorm:"size:50" json:"heating_type,omitempty"`
	EnergyRating string `gorm:"size:10" json:"energy_rating,omitempty"`

	// Location
	Address      string `gorm:"size:255;not null" json:"address"`
	City         string `gorm:"size:100;not null;index" json:"city"`
	County       string `gorm:"size:100;not null" json:"county"`
	PostalCode   string `gorm:"size:20" json:"postal_code,omitempty"`
	Neighborhood string `gorm:"size:100" json:"neighborhood,omitempty"`

	// Geolocation (the geography point column is derived from these)
	Latitude  *float64 `gorm:"type:numeric(10,8)" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"type:numeric(11,8)" json:"longitude,omitempty"`

	// Media
	Photos     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`
	MainPhoto  string                      `gorm:"size:500" json:"main_photo,omitempty"`
	PhotoCount int                         `gorm:"not null;default:0" json:"photo_count"`

	// SEO & metrics
	Slug          string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	ViewCount     int    `gorm:"not null;default:0" json:"view_count"`
	FavoriteCount int    `gorm:"not null;default:0" json:"favorite_count"`

	// Timestamps
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Property model.
func (Property) TableName() string {
	return "properties"
}
