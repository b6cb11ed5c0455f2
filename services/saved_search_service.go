package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/repositories"
)

// SavedSearchService manages per-user named search snapshots.
type SavedSearchService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.SavedSearchCreate) (*domain.SavedSearch, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.SavedSearch, error)
	Update(ctx context.Context, id, userID uuid.UUID, req dto.SavedSearchUpdate) (*domain.SavedSearch, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type savedSearchService struct {
	repo repositories.SavedSearchRepository
}

// NewSavedSearchService creates a new SavedSearchService.
func NewSavedSearchService(repo repositories.SavedSearchRepository) SavedSearchService {
	return &savedSearchService{repo: repo}
}

// Create saves a named filter set. Names are unique per user.
func (s *savedSearchService) Create(ctx context.Context, userID uuid.UUID, req dto.SavedSearchCreate) (*domain.SavedSearch, error) {
	if _, err := s.repo.GetByName(ctx, userID, req.Name); err == nil {
		return nil, fmt.Errorf("saved search %q already exists: %w", req.Name, domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	search := &domain.SavedSearch{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    req.Name,
		Filters: datatypes.JSON(req.Filters),
	}

	if err := s.repo.Create(ctx, search); err != nil {
		return nil, fmt.Errorf("creating saved search: %w", err)
	}
	return search, nil
}

// List returns all saved searches belonging to the user.
func (s *savedSearchService) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fetches one saved search scoped to the user.
func (s *savedSearchService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.SavedSearch, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Update renames a saved search and/or replaces its filters. A rename
// that collides with another saved search fails validation.
func (s *savedSearchService) Update(ctx context.Context, id, userID uuid.UUID, req dto.SavedSearchUpdate) (*domain.SavedSearch, error) {
	search, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != search.Name {
		if existing, err := s.repo.GetByName(ctx, userID, *req.Name); err == nil && existing.ID != id {
			return nil, fmt.Errorf("saved search %q already exists: %w", *req.Name, domain.ErrValidation)
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		search.Name = *req.Name
	}
	if req.Filters != nil {
		search.Filters = datatypes.JSON(req.Filters)
	}

	if err := s.repo.Save(ctx, search); err != nil {
		return nil, fmt.Errorf("saving saved search: %w", err)
	}
	return search, nil
}

// Delete removes a saved search. Returns whether it existed.
func (s *savedSearchService) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id, userID)
}
