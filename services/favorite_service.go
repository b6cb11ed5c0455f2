package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/repositories"
)

// FavoriteService manages a user's favorited properties and keeps each
// property's favorite_count in sync.
type FavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, req dto.FavoriteCreate) (*domain.Favorite, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

type favoriteService struct {
	repo         repositories.FavoriteRepository
	propertyRepo repositories.PropertyRepository
	cache        repositories.CacheRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(
	repo repositories.FavoriteRepository,
	propertyRepo repositories.PropertyRepository,
	cache repositories.CacheRepository,
) FavoriteService {
	return &favoriteService{
		repo:         repo,
		propertyRepo: propertyRepo,
		cache:        cache,
	}
}

// Add favorites a property. Adding the same property twice is a no-op
// that returns the existing favorite.
func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, req dto.FavoriteCreate) (*domain.Favorite, error) {
	if existing, err := s.repo.Get(ctx, userID, req.PropertyID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// 404 before insert so a bad property_id doesn't hit the FK.
	if _, err := s.propertyRepo.GetByID(ctx, req.PropertyID, false); err != nil {
		return nil, err
	}

	favorite := &domain.Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: req.PropertyID,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("creating favorite: %w", err)
	}

	if err := s.repo.AdjustFavoriteCount(ctx, req.PropertyID, 1); err != nil {
		log.Printf("Error adjusting favorite count: property=%s, error=%v", req.PropertyID, err)
	}
	s.cache.DeleteProperty(req.PropertyID)

	return favorite, nil
}

// List returns the user's favorites, newest first.
func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Remove unfavorites a property. Returns whether a favorite existed.
func (s *favoriteService) Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	removed, err := s.repo.Delete(ctx, userID, propertyID)
	if err != nil || !removed {
		return removed, err
	}

	if err := s.repo.AdjustFavoriteCount(ctx, propertyID, -1); err != nil {
		log.Printf("Error adjusting favorite count: property=%s, error=%v", propertyID, err)
	}
	s.cache.DeleteProperty(propertyID)

	return true, nil
}
