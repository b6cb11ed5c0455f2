package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davidjirca/dreamhome/domain"
)

// SavedSearchRepository defines the data-access contract for saved searches.
type SavedSearchRepository interface {
	Create(ctx context.Context, search *domain.SavedSearch) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.SavedSearch, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedSearch, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error)
	Save(ctx context.Context, search *domain.SavedSearch) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type savedSearchRepository struct {
	db *gorm.DB
}

// NewSavedSearchRepository creates a new SavedSearchRepository.
func NewSavedSearchRepository(db *gorm.DB) SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

func (r *savedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) error {
	return r.db.WithContext(ctx).Create(search).Error
}

func (r *savedSearchRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.SavedSearch, error) {
	var search domain.SavedSearch
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&search).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &search, nil
}

func (r *savedSearchRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedSearch, error) {
	var search domain.SavedSearch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&search).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &search, nil
}

func (r *savedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	var searches []domain.SavedSearch
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error
	return searches, err
}

func (r *savedSearchRepository) Save(ctx context.Context, search *domain.SavedSearch) error {
	return r.db.WithContext(ctx).Save(search).Error
}

func (r *savedSearchRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.SavedSearch{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
