package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/events"
	"github.com/davidjirca/dreamhome/repositories"
	"github.com/davidjirca/dreamhome/utils"
)

// PropertyService is the lifecycle service for property listings: create,
// partial update, soft delete and publish. Every mutation invalidates the
// search cache and emits a property event.
type PropertyService interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest, ownerID uuid.UUID) (*domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Property, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.UpdatePropertyRequest, requesterID uuid.UUID) (*domain.Property, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) (bool, error)
	Publish(ctx context.Context, id, requesterID uuid.UUID) (*domain.Property, error)
}

type propertyService struct {
	repo      repositories.PropertyRepository
	cache     repositories.CacheRepository
	publisher events.PropertyPublisher

	expiryDays int
}

// NewPropertyService creates a new PropertyService. The publisher may be
// nil when no broker is configured.
func NewPropertyService(
	repo repositories.PropertyRepository,
	cache repositories.CacheRepository,
	publisher events.PropertyPublisher,
	expiryDays int,
) PropertyService {
	return &propertyService{
		repo:       repo,
		cache:      cache,
		publisher:  publisher,
		expiryDays: expiryDays,
	}
}

// calculatePricePerSqm derives the denormalized price-per-square-meter
// field, rounded to two decimals. Zero area yields zero.
func calculatePricePerSqm(price, totalArea int) float64 {
	if totalArea <= 0 {
		return 0
	}
	return math.Round(float64(price)/float64(totalArea)*100) / 100
}

// Create inserts a new DRAFT listing. The slug is derived from the title
// and an ID prefix at creation time and is immutable from then on.
func (s *propertyService) Create(ctx context.Context, req dto.CreatePropertyRequest, ownerID uuid.UUID) (*domain.Property, error) {
	id := uuid.New()

	currency := req.Currency
	if currency == "" {
		currency = "RON"
	}

	property := &domain.Property{
		ID:           id,
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Status:       domain.PropertyStatusDraft,
		Price:        req.Price,
		PricePerSqm:  calculatePricePerSqm(req.Price, req.TotalArea),
		Currency:     currency,
		Negotiable:   req.Negotiable,
		TotalArea:    req.TotalArea,
		UsableArea:   req.UsableArea,
		Rooms:        req.Rooms,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Floor:        req.Floor,
		TotalFloors:  req.TotalFloors,
		YearBuilt:    req.YearBuilt,
		Balconies:    req.Balconies,
		ParkingSpots: req.ParkingSpots,
		HasGarage:    req.HasGarage,
		HasTerrace:   req.HasTerrace,
		HasGarden:    req.HasGarden,
		IsFurnished:  req.IsFurnished,
		HeatingType:  req.HeatingType,
		EnergyRating: req.EnergyRating,
		Address:      req.Address,
		City:         req.City,
		County:       req.County,
		PostalCode:   req.PostalCode,
		Neighborhood: req.Neighborhood,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Photos:       datatypes.NewJSONSlice(req.Photos),
		MainPhoto:    req.MainPhoto,
		PhotoCount:   len(req.Photos),
		Slug:         utils.GenerateSlug(req.Title, id),
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}

	if req.Latitude != nil && req.Longitude != nil {
		if err := s.repo.SetLocation(ctx, id, *req.Latitude, *req.Longitude); err != nil {
			return nil, fmt.Errorf("setting property location: %w", err)
		}
	}

	s.cache.InvalidateSearches()
	s.notify("create", id)

	log.Printf("Property created: id=%s, owner=%s, slug=%s", id, ownerID, property.Slug)
	return property, nil
}

// GetByID fetches a property with a read-through cache. Lookups that must
// see deleted rows bypass the cache.
func (s *propertyService) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Property, error) {
	if !includeDeleted {
		if property, found := s.cache.GetProperty(id); found {
			return property, nil
		}
	}

	property, err := s.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	if !includeDeleted {
		s.cache.SetProperty(property)
	}
	return property, nil
}

// GetBySlug fetches a property by its slug and counts the view.
func (s *propertyService) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	property, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, property.ID); err != nil {
		log.Printf("Error incrementing view count: id=%s, error=%v", property.ID, err)
	}
	return property, nil
}

// Update applies a partial update. Only the owner may update; only the
// whitelisted patch fields are applied, each one explicitly.
func (s *propertyService) Update(ctx context.Context, id uuid.UUID, patch dto.UpdatePropertyRequest, requesterID uuid.UUID) (*domain.Property, error) {
	property, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if property.OwnerID != requesterID {
		return nil, fmt.Errorf("updating property %s: %w", id, domain.ErrPermissionDenied)
	}

	priceOrAreaChanged := applyPatch(property, patch)
	if priceOrAreaChanged {
		property.PricePerSqm = calculatePricePerSqm(property.Price, property.TotalArea)
	}

	if err := s.repo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("saving property: %w", err)
	}

	if patch.Latitude != nil && patch.Longitude != nil {
		if err := s.repo.SetLocation(ctx, id, *patch.Latitude, *patch.Longitude); err != nil {
			return nil, fmt.Errorf("setting property location: %w", err)
		}
	}

	s.cache.DeleteProperty(id)
	s.cache.InvalidateSearches()
	s.notify("update", id)

	log.Printf("Property updated: id=%s", id)
	return property, nil
}

// applyPatch copies every provided patch field onto the property and
// reports whether price or total area changed.
func applyPatch(property *domain.Property, patch dto.UpdatePropertyRequest) bool {
	priceOrAreaChanged := false

	if patch.Title != nil {
		property.Title = *patch.Title
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}
	if patch.Price != nil {
		property.Price = *patch.Price
		priceOrAreaChanged = true
	}
	if patch.Negotiable != nil {
		property.Negotiable = *patch.Negotiable
	}
	if patch.TotalArea != nil {
		property.TotalArea = *patch.TotalArea
		priceOrAreaChanged = true
	}
	if patch.UsableArea != nil {
		property.UsableArea = patch.UsableArea
	}
	if patch.Rooms != nil {
		property.Rooms = *patch.Rooms
	}
	if patch.Bedrooms != nil {
		property.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		property.Bathrooms = *patch.Bathrooms
	}
	if patch.Floor != nil {
		property.Floor = patch.Floor
	}
	if patch.TotalFloors != nil {
		property.TotalFloors = patch.TotalFloors
	}
	if patch.YearBuilt != nil {
		property.YearBuilt = patch.YearBuilt
	}
	if patch.Balconies != nil {
		property.Balconies = *patch.Balconies
	}
	if patch.ParkingSpots != nil {
		property.ParkingSpots = *patch.ParkingSpots
	}
	if patch.HasGarage != nil {
		property.HasGarage = *patch.HasGarage
	}
	if patch.HasTerrace != nil {
		property.HasTerrace = *patch.HasTerrace
	}
	if patch.HasGarden != nil {
		property.HasGarden = *patch.HasGarden
	}
	if patch.IsFurnished != nil {
		property.IsFurnished = *patch.IsFurnished
	}
	if patch.HeatingType != nil {
		property.HeatingType = *patch.HeatingType
	}
	if patch.EnergyRating != nil {
		property.EnergyRating = *patch.EnergyRating
	}
	if patch.Address != nil {
		property.Address = *patch.Address
	}
	if patch.City != nil {
		property.City = *patch.City
	}
	if patch.County != nil {
		property.County = *patch.County
	}
	if patch.PostalCode != nil {
		property.PostalCode = *patch.PostalCode
	}
	if patch.Neighborhood != nil {
		property.Neighborhood = *patch.Neighborhood
	}
	if patch.Latitude != nil {
		property.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		property.Longitude = patch.Longitude
	}
	if patch.Photos != nil {
		property.Photos = datatypes.NewJSONSlice(patch.Photos)
		property.PhotoCount = len(patch.Photos)
	}
	if patch.MainPhoto != nil {
		property.MainPhoto = *patch.MainPhoto
	}

	return priceOrAreaChanged
}

// Delete soft-deletes a listing. Returns whether a matching, non-deleted
// property existed.
func (s *propertyService) Delete(ctx context.Context, id, requesterID uuid.UUID) (bool, error) {
	property, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if property.OwnerID != requesterID {
		return false, fmt.Errorf("deleting property %s: %w", id, domain.ErrPermissionDenied)
	}

	now := time.Now()
	property.DeletedAt = &now
	property.Status = domain.PropertyStatusExpired

	if err := s.repo.Save(ctx, property); err != nil {
		return false, fmt.Errorf("saving property: %w", err)
	}

	s.cache.DeleteProperty(id)
	s.cache.InvalidateSearches()
	s.notify("delete", id)

	log.Printf("Property deleted: id=%s", id)
	return true, nil
}

// Publish moves a DRAFT listing into the searchable ACTIVE state. Requires
// ownership and at least one photo; sets the expiry window.
func (s *propertyService) Publish(ctx context.Context, id, requesterID uuid.UUID) (*domain.Property, error) {
	property, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if property.OwnerID != requesterID {
		return nil, fmt.Errorf("publishing property %s: %w", id, domain.ErrPermissionDenied)
	}

	if len(property.Photos) == 0 {
		return nil, fmt.Errorf("cannot publish property without photos: %w", domain.ErrValidation)
	}

	now := time.Now()
	expires := now.AddDate(0, 0, s.expiryDays)
	property.Status = domain.PropertyStatusActive
	property.PublishedAt = &now
	property.ExpiresAt = &expires

	if err := s.repo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("saving property: %w", err)
	}

	s.cache.DeleteProperty(id)
	s.cache.InvalidateSearches()
	s.notify("publish", id)

	log.Printf("Property published: id=%s, expires_at=%s", id, expires.Format(time.RFC3339))
	return property, nil
}

func (s *propertyService) notify(action string, id uuid.UUID) {
	if s.publisher != nil {
		s.publisher.PublishPropertyEvent(action, id)
	}
}
